package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// RefreshPublisher announces that the report of a month is stale.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, year, month int, reason string) error
	Close() error
}

// LedgerService orchestrates record writes across storage and AMQP
type LedgerService struct {
	store     storage.Repository
	publisher RefreshPublisher
	logger    *log.Logger
}

// NewLedgerService wires a store and an optional publisher. A nil publisher
// disables refresh messages.
func NewLedgerService(store storage.Repository, publisher RefreshPublisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &LedgerService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// CreateTransaction saves t and requests a refresh of its month
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	stored, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.logger.Fields(ctx, slog.LevelInfo, "Transaction created", log.NewFields().
		WithOperation(log.OpCreate).
		WithRecord(stored.ID, stored.Category, stored.Amount.Cents))

	s.publishRefresh(ctx, stored.Date.Year(), int(stored.Date.Month()), amqp.ReasonTransactionCreated)
	return stored, nil
}

// UpdateTransaction replaces a stored transaction. When the date moves to a
// different month both months are refreshed.
func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	previous, err := s.store.GetTransaction(ctx, t.ID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.logger.Fields(ctx, slog.LevelInfo, "Transaction updated", log.NewFields().
		WithOperation(log.OpUpdate).
		WithRecord(t.ID, t.Category, t.Amount.Cents))

	s.publishRefresh(ctx, t.Date.Year(), int(t.Date.Month()), amqp.ReasonTransactionUpdated)
	if previous.Date.Year() != t.Date.Year() || previous.Date.Month() != t.Date.Month() {
		s.publishRefresh(ctx, previous.Date.Year(), int(previous.Date.Month()), amqp.ReasonTransactionUpdated)
	}
	return nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	removed, err := s.store.DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Fields(ctx, slog.LevelInfo, "Transaction deleted", log.NewFields().
		WithOperation(log.OpDelete).
		WithRecord(removed.ID, removed.Category, removed.Amount.Cents))

	s.publishRefresh(ctx, removed.Date.Year(), int(removed.Date.Month()), amqp.ReasonTransactionDeleted)
	return nil
}

func (s *LedgerService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// SaveBudget creates the budget of b's category and period, or replaces its
// amount when one already exists.
func (s *LedgerService) SaveBudget(ctx context.Context, b core.Budget) (core.Budget, bool, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, false, err
	}
	stored, created, err := s.store.UpsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, false, fmt.Errorf("save budget: %w", err)
	}

	s.logger.Fields(ctx, slog.LevelInfo, "Budget saved", log.NewFields().
		WithOperation(log.OpUpdate).
		WithRecord(stored.ID, stored.Category, stored.Amount.Cents).
		WithPeriod(stored.Year, stored.Month))

	s.publishRefresh(ctx, stored.Year, stored.Month, amqp.ReasonBudgetSaved)
	return stored, created, nil
}

func (s *LedgerService) DeleteBudget(ctx context.Context, id string) error {
	removed, err := s.store.DeleteBudget(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Fields(ctx, slog.LevelInfo, "Budget deleted", log.NewFields().
		WithOperation(log.OpDelete).
		WithRecord(removed.ID, removed.Category, removed.Amount.Cents).
		WithPeriod(removed.Year, removed.Month))

	s.publishRefresh(ctx, removed.Year, removed.Month, amqp.ReasonBudgetDeleted)
	return nil
}

// publishRefresh never fails the caller; the record is already stored.
func (s *LedgerService) publishRefresh(ctx context.Context, year, month int, reason string) {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not available, skipping refresh message")
		return
	}
	if err := s.publisher.PublishRefresh(ctx, year, month, reason); err != nil {
		s.logger.Fields(ctx, slog.LevelError, "Failed to publish refresh message", log.NewFields().
			WithOperation(log.OpPublish).
			WithPeriod(year, month).
			WithError(err))
	}
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}

	return nil
}
