package sheets

import (
	"strings"

	"fintrack/internal/analytics"
)

// ReportRows lays out a report as spreadsheet rows: a summary block, the
// budget comparisons, the budgets grouped by status, the month's category
// breakdown and the insights, each separated by an empty row. Cells are
// display strings; budget amounts are whole currency units.
func ReportRows(r analytics.Report) [][]any {
	rows := [][]any{
		{"Report", r.Period.Label},
		{"Month total", analytics.FormatCurrency(r.Month.Current)},
		{"Previous month", analytics.FormatCurrency(r.Month.Previous)},
		{"Change", analytics.FormatSignedPercent(r.Month.ChangePct)},
		{"Transactions", r.Month.TransactionCount},
		{"Average transaction", analytics.FormatAmount(r.Month.AverageTransaction)},
		{"Average daily", analytics.FormatAmount(r.Month.AverageDaily)},
		{"Total budget", analytics.FormatCurrency(r.BudgetSummary.TotalBudget)},
		{"Budget used", analytics.FormatPercent(r.BudgetSummary.PercentageUsed)},
		{},
		{"Category", "Budget", "Spent", "Remaining", "Used", "Status"},
	}
	for _, c := range r.Comparisons {
		rows = append(rows, []any{
			c.Name,
			analytics.FormatCurrencyWhole(c.BudgetAmount),
			analytics.FormatCurrency(c.ActualAmount),
			analytics.FormatCurrency(c.Remaining),
			analytics.FormatPercent(c.PercentageUsed),
			string(c.Status),
		})
	}

	rows = append(rows, []any{}, []any{"Status", "Budgets", "Categories"},
		statusRow("Over budget", r.OverBudget),
		statusRow("Warning", r.Warning),
		statusRow("On track", r.OnTrack),
	)

	rows = append(rows, []any{}, []any{"Category", "Spent", "Transactions", "Share"})
	for _, e := range r.MonthBreakdown {
		rows = append(rows, []any{
			e.Name,
			analytics.FormatCurrency(e.Total),
			e.Count,
			analytics.FormatPercent(e.Share),
		})
	}

	rows = append(rows, []any{}, []any{"Insight", "Message"})
	for _, in := range r.Insights {
		rows = append(rows, []any{in.Title, in.Message})
	}
	return rows
}

func statusRow(label string, cs []analytics.BudgetComparison) []any {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return []any{label, len(cs), strings.Join(names, ", ")}
}
