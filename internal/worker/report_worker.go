package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/analytics"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
)

// ReportSource computes reports from the current stored records.
type ReportSource interface {
	Report(ctx context.Context, ref time.Time) (analytics.Report, error)
	Reports(ctx context.Context, refs []time.Time) ([]analytics.Report, error)
}

// ReportWorker keeps exported reports in step with the ledger. It reacts to
// refresh messages and periodically re-exports the current and previous month.
type ReportWorker struct {
	source ReportSource
	writer sheets.ReportWriter
	now    func() time.Time
	logger *log.Logger
}

func NewReportWorker(source ReportSource, writer sheets.ReportWriter, logger *log.Logger) *ReportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ReportWorker{
		source: source,
		writer: writer,
		now:    time.Now,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleRefresh recomputes and exports the month named by msg.
func (w *ReportWorker) HandleRefresh(ctx context.Context, msg *amqp.RefreshMessage) error {
	w.logger.InfoContext(ctx, "Processing refresh message",
		"year", msg.Year,
		"month", msg.Month,
		"reason", msg.Reason)

	report, err := w.source.Report(ctx, msg.Period())
	if err != nil {
		return fmt.Errorf("compute report: %w", err)
	}
	return w.export(ctx, report)
}

// RefreshRecent exports the current and the previous month.
func (w *ReportWorker) RefreshRecent(ctx context.Context) error {
	now := w.now()
	month, year := analytics.PreviousMonth(int(now.Month()), now.Year())
	previous := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, now.Location())

	reports, err := w.source.Reports(ctx, []time.Time{now, previous})
	if err != nil {
		return fmt.Errorf("compute reports: %w", err)
	}

	var errs []error
	for _, r := range reports {
		if err := w.export(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run calls RefreshRecent immediately and then on every interval until ctx ends.
func (w *ReportWorker) Run(ctx context.Context, interval time.Duration) error {
	if err := w.RefreshRecent(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Startup refresh failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshRecent(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Periodic refresh failed", "error", err)
			}
		}
	}
}

func (w *ReportWorker) export(ctx context.Context, r analytics.Report) error {
	start := time.Now()
	if err := w.writer.WriteReport(ctx, r); err != nil {
		w.logger.Fields(ctx, slog.LevelError, "Report export failed", log.NewFields().
			WithOperation(log.OpExport).
			WithPeriod(r.Period.Year, r.Period.Month).
			WithError(err))
		return fmt.Errorf("export %s: %w", r.Period.MonthKey, err)
	}

	w.logger.Fields(ctx, slog.LevelInfo, "Report exported", log.NewFields().
		WithOperation(log.OpExport).
		WithPeriod(r.Period.Year, r.Period.Month).
		WithDuration(time.Since(start)))
	return nil
}
