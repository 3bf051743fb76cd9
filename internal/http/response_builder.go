package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

type transactionResponse struct {
	ID           string     `json:"id"`
	Amount       core.Money `json:"amount"`
	Date         string     `json:"date"`
	Category     string     `json:"category"`
	CategoryName string     `json:"categoryName"`
	Description  string     `json:"description"`
}

func newTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		Amount:       t.Amount,
		Date:         t.Date.Format(time.DateOnly),
		Category:     t.Category,
		CategoryName: analytics.Resolve(t.Category).Name,
		Description:  t.Description,
	}
}

type budgetResponse struct {
	ID       string     `json:"id"`
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Month    int        `json:"month"`
	Year     int        `json:"year"`
}

func newBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount,
		Month:    b.Month,
		Year:     b.Year,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

// writeError maps err to a status: validation and malformed bodies are 400,
// missing records 404, everything else 500 with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, errBadBody):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

type readyResponse struct {
	Status   string           `json:"status"`
	Security securityCounters `json:"security"`
}
