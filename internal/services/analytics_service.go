package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/analytics"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

const defaultLoadTimeout = 5 * time.Second

// AnalyticsService loads a snapshot from storage and runs the engine over it.
// Every call reads fresh data; nothing is cached between calls.
type AnalyticsService struct {
	transactions storage.TransactionReader
	budgets      storage.BudgetReader
	engine       *analytics.Engine
	loadTimeout  time.Duration
	logger       *log.Logger
}

// NewAnalyticsService builds reports from the two readers. A nil engine or
// logger and a non-positive loadTimeout fall back to defaults.
func NewAnalyticsService(
	transactions storage.TransactionReader,
	budgets storage.BudgetReader,
	engine *analytics.Engine,
	loadTimeout time.Duration,
	logger *log.Logger,
) *AnalyticsService {
	if engine == nil {
		engine = analytics.NewEngine()
	}
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &AnalyticsService{
		transactions: transactions,
		budgets:      budgets,
		engine:       engine,
		loadTimeout:  loadTimeout,
		logger:       logger.WithComponent(log.ComponentAnalytics),
	}
}

// Snapshot reads transactions and budgets concurrently.
func (s *AnalyticsService) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	var snap analytics.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.transactions.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		budgets, err := s.budgets.ListBudgets(gctx)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		snap.Budgets = budgets
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.Snapshot{}, err
	}
	return snap, nil
}

// Report computes the report of the month containing ref.
func (s *AnalyticsService) Report(ctx context.Context, ref time.Time) (analytics.Report, error) {
	start := time.Now()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logFailure(ctx, ref, err)
		return analytics.Report{}, err
	}

	report, err := s.engine.Compute(snap, ref)
	if err != nil {
		s.logFailure(ctx, ref, err)
		return analytics.Report{}, fmt.Errorf("compute report: %w", err)
	}

	s.logger.Fields(ctx, slog.LevelDebug, "Report computed", log.NewFields().
		WithOperation(log.OpCompute).
		WithPeriod(report.Period.Year, report.Period.Month).
		WithDuration(time.Since(start)))
	return report, nil
}

// Reports computes one report per reference time over a single snapshot.
func (s *AnalyticsService) Reports(ctx context.Context, refs []time.Time) ([]analytics.Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.engine.ComputeMonths(ctx, snap, refs)
	if err != nil {
		return nil, fmt.Errorf("compute reports: %w", err)
	}
	return reports, nil
}

func (s *AnalyticsService) logFailure(ctx context.Context, ref time.Time, err error) {
	s.logger.Fields(ctx, slog.LevelError, "Report computation failed", log.NewFields().
		WithOperation(log.OpCompute).
		WithPeriod(ref.Year(), int(ref.Month())).
		WithError(err))
}
