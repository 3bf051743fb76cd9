package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

const maxBodyBytes = 1 << 20

// transactionRequest is the body of POST and PUT /api/transactions.
type transactionRequest struct {
	ID          string     `json:"id"`
	Amount      core.Money `json:"amount"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          strings.TrimSpace(req.ID),
		Amount:      req.Amount,
		Date:        date,
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
	}
	return t, t.Validate()
}

// budgetRequest is the body of POST /api/budgets.
type budgetRequest struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Month    int        `json:"month"`
	Year     int        `json:"year"`
}

func (req budgetRequest) toBudget() (core.Budget, error) {
	b := core.Budget{
		Category: sanitizeInput(req.Category),
		Amount:   req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	}
	return b, b.Validate()
}

// errBadBody marks a request body that is not valid JSON for its endpoint.
var errBadBody = errors.New("invalid request body")

// decodeJSON reads a single JSON object from the request body into v.
// Validation errors raised while decoding fields (amounts) pass through.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if core.IsValidation(err) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errBadBody)
	}
	return nil
}
