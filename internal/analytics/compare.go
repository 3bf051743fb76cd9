package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// Status classifies how much of a budget has been used.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// Utilization thresholds, in percent of the budget.
const (
	warningThreshold = 80.0
	overThreshold    = 100.0
)

// BudgetComparison joins one budget with the actual spending of its category.
type BudgetComparison struct {
	CategoryID     string     `json:"categoryId"`
	Name           string     `json:"name"`
	Icon           string     `json:"icon"`
	BudgetAmount   core.Money `json:"budgetAmount"`
	ActualAmount   core.Money `json:"actualAmount"`
	Remaining      core.Money `json:"remaining"`
	Overspent      core.Money `json:"overspent"`
	PercentageUsed float64    `json:"percentageUsed"`
	Status         Status     `json:"status"`
}

// BudgetSummary totals every comparison of a month.
type BudgetSummary struct {
	TotalBudget    core.Money `json:"totalBudget"`
	TotalSpent     core.Money `json:"totalSpent"`
	PercentageUsed float64    `json:"percentageUsed"`
	Over           int        `json:"over"`
	Warning        int        `json:"warning"`
	Good           int        `json:"good"`
}

// Classify maps a utilization percentage to a status. Both bounds are
// exclusive on the low side: exactly 80 is good, exactly 100 is warning.
func Classify(percentageUsed float64) Status {
	switch {
	case percentageUsed > overThreshold:
		return StatusOver
	case percentageUsed > warningThreshold:
		return StatusWarning
	default:
		return StatusGood
	}
}

// PercentageUsed returns actual as a percentage of budget, or 0 when budget is zero.
func PercentageUsed(actual, budget core.Money) float64 {
	if budget.Cents <= 0 {
		return 0
	}
	return float64(actual.Cents) * 100 / float64(budget.Cents)
}

type budgetKey struct {
	category string
	month    int
	year     int
}

// DedupeBudgets keeps the last budget seen for each (category, month, year).
// The survivor keeps its own position relative to the other budgets.
func DedupeBudgets(budgets []core.Budget) []core.Budget {
	last := make(map[budgetKey]int, len(budgets))
	for i, b := range budgets {
		last[budgetKey{b.Category, b.Month, b.Year}] = i
	}
	out := make([]core.Budget, 0, len(last))
	for i, b := range budgets {
		if last[budgetKey{b.Category, b.Month, b.Year}] == i {
			out = append(out, b)
		}
	}
	return out
}

// Compare builds one comparison per budget of month/year, ordered by budget
// amount descending with ties kept in input order. Actual spending sums the
// transactions of the budget's category id in the same month. Categories
// that have spending but no budget are left out.
//
// The join is on the raw category id, while ByCategory groups by the
// resolved id. Spending under an unregistered id such as "misc" therefore
// shows in the breakdown's "other" entry but not in the actual amount of a
// budget set on "other".
func Compare(budgets []core.Budget, txs []core.Transaction, month, year int) []BudgetComparison {
	spent := make(map[string]int64)
	for _, t := range InMonth(txs, month, year) {
		spent[t.Category] += t.Amount.Cents
	}

	var out []BudgetComparison
	for _, b := range DedupeBudgets(budgets) {
		if b.Month != month || b.Year != year {
			continue
		}
		c := Resolve(b.Category)
		actual := core.Money{Cents: spent[b.Category]}
		pct := PercentageUsed(actual, b.Amount)
		out = append(out, BudgetComparison{
			CategoryID:     b.Category,
			Name:           c.Name,
			Icon:           c.Icon,
			BudgetAmount:   b.Amount,
			ActualAmount:   actual,
			Remaining:      core.Money{Cents: max(0, b.Amount.Cents-actual.Cents)},
			Overspent:      core.Money{Cents: max(0, actual.Cents-b.Amount.Cents)},
			PercentageUsed: pct,
			Status:         Classify(pct),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BudgetAmount.Cents > out[j].BudgetAmount.Cents
	})
	return out
}

// FilterByStatus returns the comparisons with status s, preserving order.
// The result is nil when none match.
func FilterByStatus(cs []BudgetComparison, s Status) []BudgetComparison {
	var out []BudgetComparison
	for _, c := range cs {
		if c.Status == s {
			out = append(out, c)
		}
	}
	return out
}

// Summarize totals a month's comparisons. TotalSpent is the whole month's
// spending, budgeted or not.
func Summarize(cs []BudgetComparison, monthSpent core.Money) BudgetSummary {
	s := BudgetSummary{TotalSpent: monthSpent}
	for _, c := range cs {
		s.TotalBudget.Cents += c.BudgetAmount.Cents
		switch c.Status {
		case StatusOver:
			s.Over++
		case StatusWarning:
			s.Warning++
		default:
			s.Good++
		}
	}
	s.PercentageUsed = PercentageUsed(s.TotalSpent, s.TotalBudget)
	return s
}
