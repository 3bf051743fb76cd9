package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
)

// DefaultTrendMonths is the length of the monthly trend window.
const DefaultTrendMonths = 6

// Snapshot is the set of records one computation runs over.
// The engine only reads it.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      []core.Budget
}

// Period identifies the reference month of a report.
type Period struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	MonthKey string `json:"monthKey"`
	Label    string `json:"label"`
}

// MonthTotals describes the reference month against the month before it.
type MonthTotals struct {
	Current            core.Money `json:"current"`
	Previous           core.Money `json:"previous"`
	ChangePct          float64    `json:"changePct"`
	TransactionCount   int        `json:"transactionCount"`
	AverageTransaction float64    `json:"averageTransaction"`
	AverageDaily       float64    `json:"averageDaily"`
}

// OverallTotals covers every transaction in the snapshot.
type OverallTotals struct {
	Total              core.Money `json:"total"`
	TransactionCount   int        `json:"transactionCount"`
	AverageTransaction float64    `json:"averageTransaction"`
}

// Report is the full analytics result for one reference month.
type Report struct {
	Period         Period                            `json:"period"`
	Month          MonthTotals                       `json:"month"`
	Overall        OverallTotals                     `json:"overall"`
	Trend          []MonthlyBucket                   `json:"trend"`
	TrendStats     Stats                             `json:"trendStats"`
	ByCategory     map[string]CategoryBreakdownEntry `json:"byCategory"`
	Breakdown      []CategoryBreakdownEntry          `json:"breakdown"`
	MonthBreakdown []CategoryBreakdownEntry          `json:"monthBreakdown"`
	TopCategory    *CategoryBreakdownEntry           `json:"topCategory,omitempty"`
	Comparisons    []BudgetComparison                `json:"comparisons"`
	BudgetSummary  BudgetSummary                     `json:"budgetSummary"`
	OverBudget     []BudgetComparison                `json:"overBudget"`
	Warning        []BudgetComparison                `json:"warning"`
	OnTrack        []BudgetComparison                `json:"onTrack"`
	Insights       []Insight                         `json:"insights"`
}

// Engine runs the analytics pipeline. The zero value is not usable; use NewEngine.
type Engine struct {
	trendMonths int
	rules       []Rule
}

// Option configures an Engine.
type Option func(*Engine)

// WithTrendMonths sets the trend window length.
func WithTrendMonths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.trendMonths = n
		}
	}
}

// WithRules replaces the insight rules.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// NewEngine returns an engine with a six-month trend window and the default
// insight rules, adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		trendMonths: DefaultTrendMonths,
		rules:       DefaultRules,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateSnapshot rejects records that would corrupt sums: negative or zero
// transaction amounts, negative budgets and out-of-range budget months.
func ValidateSnapshot(s Snapshot) error {
	for i, t := range s.Transactions {
		if t.Amount.Cents <= 0 {
			return fmt.Errorf("transaction %d (%s): %w", i, t.ID, core.NewValidationError("amount", "must be greater than zero"))
		}
		if t.Date.IsZero() {
			return fmt.Errorf("transaction %d (%s): %w", i, t.ID, core.ErrInvalidDate)
		}
	}
	for i, b := range s.Budgets {
		if err := b.Amount.Validate(); err != nil {
			return fmt.Errorf("budget %d (%s): %w", i, b.ID, err)
		}
		if err := core.ValidateMonth(b.Month); err != nil {
			return fmt.Errorf("budget %d (%s): %w", i, b.ID, err)
		}
	}
	return nil
}

// Compute builds the report for the calendar month containing now.
func (e *Engine) Compute(s Snapshot, now time.Time) (Report, error) {
	if err := ValidateSnapshot(s); err != nil {
		return Report{}, err
	}

	month, year := int(now.Month()), now.Year()
	current, previous := CurrentAndPrevious(s.Transactions, now)
	comparisons := Compare(s.Budgets, s.Transactions, month, year)
	facts := NewFacts(current, previous, comparisons)

	trend := WithIntensity(TrailingMonths(s.Transactions, e.trendMonths, now))
	byCategory := ByCategory(s.Transactions)
	monthBreakdown := SortedBreakdown(ByCategory(current))

	r := Report{
		Period: Period{
			Year:     year,
			Month:    month,
			MonthKey: MonthKey(month, year),
			Label:    MonthLabel(month, year),
		},
		Month: MonthTotals{
			Current:            facts.CurrentTotal,
			Previous:           facts.PreviousTotal,
			ChangePct:          facts.ChangePct,
			TransactionCount:   len(current),
			AverageTransaction: facts.CurrentAverage,
			AverageDaily:       AverageDaily(current),
		},
		Overall: OverallTotals{
			Total:              TotalOf(s.Transactions),
			TransactionCount:   len(s.Transactions),
			AverageTransaction: AverageOf(s.Transactions),
		},
		Trend:          trend,
		TrendStats:     PeakAndAverage(trend),
		ByCategory:     byCategory,
		Breakdown:      SortedBreakdown(byCategory),
		MonthBreakdown: monthBreakdown,
		Comparisons:    comparisons,
		BudgetSummary:  Summarize(comparisons, facts.CurrentTotal),
		OverBudget:     FilterByStatus(comparisons, StatusOver),
		Warning:        FilterByStatus(comparisons, StatusWarning),
		OnTrack:        FilterByStatus(comparisons, StatusGood),
		Insights:       GenerateInsights(facts, e.rules),
	}
	if len(monthBreakdown) > 0 {
		top := monthBreakdown[0]
		r.TopCategory = &top
	}
	return r, nil
}

// ComputeMonths builds one report per reference time concurrently.
// Reports are returned in the order of refs.
func (e *Engine) ComputeMonths(ctx context.Context, s Snapshot, refs []time.Time) ([]Report, error) {
	if err := ValidateSnapshot(s); err != nil {
		return nil, err
	}

	reports := make([]Report, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := e.Compute(s, ref)
			if err != nil {
				return fmt.Errorf("compute %s: %w", MonthKey(int(ref.Month()), ref.Year()), err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
