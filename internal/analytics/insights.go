package analytics

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// InsightKind is the severity of an insight.
type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightSuccess InsightKind = "success"
	InsightError   InsightKind = "error"
	InsightInfo    InsightKind = "info"
)

// Rule thresholds.
const (
	spendingIncreasePct  = 20.0
	spendingDecreasePct  = -10.0
	highAverageThreshold = 100.0 // currency units
)

// Insight is a human-readable finding.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// Facts is everything the insight rules look at.
type Facts struct {
	CurrentTotal   core.Money
	PreviousTotal  core.Money
	ChangePct      float64
	CurrentAverage float64
	OverBudget     int
	WarningBudget  int
	OnTrack        int
}

// Rule inspects facts and produces at most one insight.
type Rule struct {
	Name     string
	Evaluate func(Facts) (Insight, bool)
}

// DefaultRules are evaluated in priority order.
var DefaultRules = []Rule{
	{Name: "month_over_month", Evaluate: monthOverMonthRule},
	{Name: "over_budget", Evaluate: overBudgetRule},
	{Name: "high_average", Evaluate: highAverageRule},
	{Name: "on_track", Evaluate: onTrackRule},
}

// ChangePercent returns the change from previous to current in percent,
// or 0 when there is no previous spending.
func ChangePercent(current, previous core.Money) float64 {
	if previous.Cents <= 0 {
		return 0
	}
	return float64(current.Cents-previous.Cents) * 100 / float64(previous.Cents)
}

// NewFacts derives facts from the current and previous month transactions
// and the current month's budget comparisons.
func NewFacts(current, previous []core.Transaction, comparisons []BudgetComparison) Facts {
	f := Facts{
		CurrentTotal:   TotalOf(current),
		PreviousTotal:  TotalOf(previous),
		CurrentAverage: AverageOf(current),
	}
	f.ChangePct = ChangePercent(f.CurrentTotal, f.PreviousTotal)
	for _, c := range comparisons {
		switch c.Status {
		case StatusOver:
			f.OverBudget++
		case StatusWarning:
			f.WarningBudget++
		default:
			f.OnTrack++
		}
	}
	return f
}

// GenerateInsights runs every rule against f, in order, and collects what fires.
func GenerateInsights(f Facts, rules []Rule) []Insight {
	out := []Insight{}
	for _, r := range rules {
		if in, ok := r.Evaluate(f); ok {
			out = append(out, in)
		}
	}
	return out
}

func monthOverMonthRule(f Facts) (Insight, bool) {
	switch {
	case f.ChangePct > spendingIncreasePct:
		return Insight{
			Kind:    InsightWarning,
			Title:   "High Spending Increase",
			Message: fmt.Sprintf("Your spending increased by %.1f%% compared to last month", f.ChangePct),
		}, true
	case f.ChangePct < spendingDecreasePct:
		return Insight{
			Kind:    InsightSuccess,
			Title:   "Great Savings!",
			Message: fmt.Sprintf("You reduced spending by %.1f%% compared to last month", math.Abs(f.ChangePct)),
		}, true
	}
	return Insight{}, false
}

func overBudgetRule(f Facts) (Insight, bool) {
	if f.OverBudget == 0 {
		return Insight{}, false
	}
	return Insight{
		Kind:    InsightError,
		Title:   "Budget Exceeded",
		Message: fmt.Sprintf("You're over budget in %d %s", f.OverBudget, pluralize(f.OverBudget, "category", "categories")),
	}, true
}

func highAverageRule(f Facts) (Insight, bool) {
	if f.CurrentAverage <= highAverageThreshold {
		return Insight{}, false
	}
	return Insight{
		Kind:    InsightInfo,
		Title:   "High Average Transaction",
		Message: fmt.Sprintf("Your average transaction is %s. Consider tracking smaller expenses too.", FormatAmount(f.CurrentAverage)),
	}, true
}

func onTrackRule(f Facts) (Insight, bool) {
	if f.OnTrack == 0 {
		return Insight{}, false
	}
	return Insight{
		Kind:    InsightSuccess,
		Title:   "Budget On Track",
		Message: fmt.Sprintf("You're doing well in %d %s", f.OnTrack, pluralize(f.OnTrack, "category", "categories")),
	}, true
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
