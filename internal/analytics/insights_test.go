package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func kinds(ins []Insight) []InsightKind {
	out := make([]InsightKind, 0, len(ins))
	for _, in := range ins {
		out = append(out, in.Kind)
	}
	return out
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, 21.0, ChangePercent(core.Money{Cents: 12100}, core.Money{Cents: 10000}))
	assert.Equal(t, -11.0, ChangePercent(core.Money{Cents: 8900}, core.Money{Cents: 10000}))
	assert.Equal(t, 0.0, ChangePercent(core.Money{Cents: 8900}, core.Money{}))
}

func TestMonthOverMonthRule(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     *Insight
	}{
		{"increase", 12100, 10000, &Insight{Kind: InsightWarning, Title: "High Spending Increase", Message: "Your spending increased by 21.0% compared to last month"}},
		{"decrease", 8900, 10000, &Insight{Kind: InsightSuccess, Title: "Great Savings!", Message: "You reduced spending by 11.0% compared to last month"}},
		{"small change", 11000, 10000, nil},
		{"exactly twenty", 12000, 10000, nil},
		{"exactly minus ten", 9000, 10000, nil},
		{"no previous month", 50000, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Facts{
				CurrentTotal:  core.Money{Cents: tc.current},
				PreviousTotal: core.Money{Cents: tc.previous},
				ChangePct:     ChangePercent(core.Money{Cents: tc.current}, core.Money{Cents: tc.previous}),
			}
			got, ok := monthOverMonthRule(f)
			if tc.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, *tc.want, got)
		})
	}
}

func TestOverBudgetRuleWording(t *testing.T) {
	_, ok := overBudgetRule(Facts{})
	assert.False(t, ok)

	one, ok := overBudgetRule(Facts{OverBudget: 1})
	require.True(t, ok)
	assert.Equal(t, InsightError, one.Kind)
	assert.Equal(t, "You're over budget in 1 category", one.Message)

	many, _ := overBudgetRule(Facts{OverBudget: 3})
	assert.Equal(t, "You're over budget in 3 categories", many.Message)
}

func TestHighAverageRule(t *testing.T) {
	_, ok := highAverageRule(Facts{CurrentAverage: 100})
	assert.False(t, ok, "exactly 100 does not fire")

	in, ok := highAverageRule(Facts{CurrentAverage: 150.5})
	require.True(t, ok)
	assert.Equal(t, InsightInfo, in.Kind)
	assert.Equal(t, "Your average transaction is $150.50. Consider tracking smaller expenses too.", in.Message)
}

func TestOnTrackRule(t *testing.T) {
	_, ok := onTrackRule(Facts{WarningBudget: 2})
	assert.False(t, ok)

	in, ok := onTrackRule(Facts{OnTrack: 2})
	require.True(t, ok)
	assert.Equal(t, InsightSuccess, in.Kind)
	assert.Equal(t, "You're doing well in 2 categories", in.Message)
}

func TestGenerateInsightsRunsEveryRuleInOrder(t *testing.T) {
	f := Facts{
		ChangePct:      35,
		CurrentAverage: 250,
		OverBudget:     1,
		OnTrack:        1,
	}
	got := GenerateInsights(f, DefaultRules)
	assert.Equal(t, []InsightKind{InsightWarning, InsightError, InsightInfo, InsightSuccess}, kinds(got))

	assert.Empty(t, GenerateInsights(Facts{}, DefaultRules))
	assert.NotNil(t, GenerateInsights(Facts{}, DefaultRules))
}

func TestNewFacts(t *testing.T) {
	current := []core.Transaction{tx(20000, date(2024, 3, 1), "food"), tx(4000, date(2024, 3, 2), "food")}
	previous := []core.Transaction{tx(10000, date(2024, 2, 1), "food")}
	comparisons := []BudgetComparison{{Status: StatusOver}, {Status: StatusWarning}, {Status: StatusGood}, {Status: StatusGood}}

	f := NewFacts(current, previous, comparisons)
	assert.Equal(t, int64(24000), f.CurrentTotal.Cents)
	assert.Equal(t, int64(10000), f.PreviousTotal.Cents)
	assert.Equal(t, 140.0, f.ChangePct)
	assert.InDelta(t, 120.0, f.CurrentAverage, 1e-9)
	assert.Equal(t, 1, f.OverBudget)
	assert.Equal(t, 1, f.WarningBudget)
	assert.Equal(t, 2, f.OnTrack)
}
