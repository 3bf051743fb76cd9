package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.ListBudgets(r.Context()); err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Status: "ready", Security: s.metrics.snapshot()})
}

// recordID reads the record id from the path, falling back to ?id=.
func recordID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("id"))
}

// handleListTransactions returns transactions newest first, optionally
// restricted to ?year=&month= and ?category=.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if hasPeriodQuery(r) {
		year, month, err := parseYearMonth(r, s.now())
		if err != nil {
			writeError(w, r, err)
			return
		}
		txs = analytics.InMonth(txs, month, year)
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, newTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := req.toTransaction()
	if err != nil {
		writeError(w, r, err)
		return
	}

	stored, err := s.ledger.CreateTransaction(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionResponse(stored))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if id := recordID(r); id != "" {
		req.ID = id
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, r, core.NewValidationError("id", "is required"))
		return
	}
	t, err := req.toTransaction()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.ledger.UpdateTransaction(r.Context(), t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)
	if id == "" {
		writeError(w, r, core.NewValidationError("id", "is required"))
		return
	}
	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListBudgets returns budgets latest period first, optionally
// restricted to ?year=&month=.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.ledger.ListBudgets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := hasPeriodQuery(r)
	var year, month int
	if filter {
		if year, month, err = parseYearMonth(r, s.now()); err != nil {
			writeError(w, r, err)
			return
		}
	}

	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		if filter && (b.Year != year || b.Month != month) {
			continue
		}
		out = append(out, newBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSaveBudget creates a budget, or replaces the amount of the existing
// budget for the same category and month.
func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := req.toBudget()
	if err != nil {
		writeError(w, r, err)
		return
	}

	stored, created, err := s.ledger.SaveBudget(r.Context(), b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newBudgetResponse(stored))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)
	if id == "" {
		writeError(w, r, core.NewValidationError("id", "is required"))
		return
	}
	if err := s.ledger.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalytics returns the report for ?year=&month=, or for the current
// month when neither is given.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ref := s.now()
	if hasPeriodQuery(r) {
		year, month, err := parseYearMonth(r, ref)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ref = time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	}

	report, err := s.reports.Report(r.Context(), ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Categories())
}
