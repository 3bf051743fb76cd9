package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Ports implemented by every persistence backend.
type (
	// TransactionReader lists every stored transaction, newest first.
	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// BudgetReader lists every stored budget, latest period first.
	BudgetReader interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	TransactionWriter interface {
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		// CreateTransaction assigns an id and returns the stored record.
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		// DeleteTransaction returns the removed record.
		DeleteTransaction(ctx context.Context, id string) (core.Transaction, error)
	}

	BudgetWriter interface {
		// UpsertBudget stores b, replacing the amount of an existing budget for the
		// same category, month and year. created reports whether a new row was added.
		UpsertBudget(ctx context.Context, b core.Budget) (stored core.Budget, created bool, err error)
		// DeleteBudget returns the removed record.
		DeleteBudget(ctx context.Context, id string) (core.Budget, error)
	}

	Repository interface {
		TransactionReader
		BudgetReader
		TransactionWriter
		BudgetWriter
		Close() error
	}
)
