package sheets

import (
	"context"

	"fintrack/internal/analytics"
)

// Ports for outbound adapters.
type (
	// ReportWriter publishes a computed report, replacing any earlier
	// version written for the same month.
	ReportWriter interface {
		WriteReport(ctx context.Context, r analytics.Report) error
	}
)
