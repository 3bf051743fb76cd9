package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		tx(5000, date(2024, 3, 5), "food"),
		tx(3000, date(2024, 3, 10), "food"),
		tx(2000, date(2024, 2, 1), "food"),
		tx(12000, date(2024, 3, 12), "travel"),
		tx(700, date(2024, 1, 15), "crypto"),
		tx(300, date(2024, 1, 16), "other"),
	}
}

func TestTotalOf(t *testing.T) {
	assert.Equal(t, int64(0), TotalOf(nil).Cents)
	assert.Equal(t, int64(23000), TotalOf(sampleTransactions()).Cents)
}

func TestAverageOf(t *testing.T) {
	assert.Equal(t, 0.0, AverageOf(nil))
	assert.Equal(t, 0.0, AverageOf([]core.Transaction{}))

	txs := sampleTransactions()
	assert.InDelta(t, TotalOf(txs).Dollars()/float64(len(txs)), AverageOf(txs), 1e-9)
	assert.InDelta(t, 50.0, AverageOf(txs[:1]), 1e-9)
}

func TestAverageDaily(t *testing.T) {
	assert.Equal(t, 0.0, AverageDaily(nil))
	txs := []core.Transaction{
		tx(1000, date(2024, 3, 1), "food"),
		tx(3000, date(2024, 3, 1), "food"),
		tx(2000, date(2024, 3, 2), "food"),
	}
	// Two spending days: 40 and 20.
	assert.InDelta(t, 30.0, AverageDaily(txs), 1e-9)
}

func TestByCategory(t *testing.T) {
	txs := sampleTransactions()
	m := ByCategory(txs)

	require.Len(t, m, 3)
	assert.Equal(t, int64(10000), m["food"].Total.Cents)
	assert.Equal(t, 3, m["food"].Count)
	assert.Equal(t, "Food & Dining", m["food"].Name)
	assert.Equal(t, int64(12000), m["travel"].Total.Cents)

	// "crypto" is unknown and lands in "other" together with explicit "other".
	assert.Equal(t, int64(1000), m[FallbackCategoryID].Total.Cents)
	assert.Equal(t, 2, m[FallbackCategoryID].Count)
	_, hasCrypto := m["crypto"]
	assert.False(t, hasCrypto)

	var sum int64
	for _, e := range m {
		sum += e.Total.Cents
	}
	assert.Equal(t, TotalOf(txs).Cents, sum)
}

func TestByCategoryOrderIndependentTotals(t *testing.T) {
	txs := sampleTransactions()
	reversed := make([]core.Transaction, len(txs))
	for i := range txs {
		reversed[len(txs)-1-i] = txs[i]
	}
	a, b := ByCategory(txs), ByCategory(reversed)
	for id, e := range a {
		assert.Equal(t, e.Total, b[id].Total, "category %s", id)
		assert.Equal(t, e.Count, b[id].Count, "category %s", id)
	}
}

func TestSortedBreakdownAndTies(t *testing.T) {
	txs := []core.Transaction{
		tx(500, date(2024, 3, 1), "shopping"),
		tx(500, date(2024, 3, 2), "bills"),
		tx(1000, date(2024, 3, 3), "food"),
	}
	entries := SortedBreakdown(ByCategory(txs))
	require.Len(t, entries, 3)
	assert.Equal(t, "food", entries[0].CategoryID)
	assert.Equal(t, "shopping", entries[1].CategoryID, "ties keep first-encounter order")
	assert.Equal(t, "bills", entries[2].CategoryID)
	assert.InDelta(t, 50.0, entries[0].Share, 1e-9)
	assert.InDelta(t, 25.0, entries[1].Share, 1e-9)

	top := TopCategories(ByCategory(txs), 1)
	require.Len(t, top, 1)
	assert.Equal(t, "food", top[0].CategoryID)
	assert.Empty(t, TopCategories(nil, 3))
}

func TestCategoryShareZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, CategoryShare(CategoryBreakdownEntry{}, core.Money{}))
}

func TestTrailingMonths(t *testing.T) {
	var txs []core.Transaction
	for m := 1; m <= 9; m++ {
		txs = append(txs, tx(int64(m*1000), date(2024, m, 10), "food"))
	}

	got := TrailingMonths(txs, 6, date(2024, 8, 1))
	require.Len(t, got, 6)
	assert.Equal(t, "2024-03", got[0].MonthKey)
	assert.Equal(t, "2024-08", got[5].MonthKey, "reference month included, later months excluded")

	short := TrailingMonths(txs[:2], 6, date(2024, 8, 1))
	assert.Len(t, short, 2, "short history yields fewer buckets")

	assert.Empty(t, TrailingMonths(txs, 0, date(2024, 8, 1)))
	assert.Empty(t, TrailingMonths(txs, 6, date(2023, 12, 1)))
}

func TestPeakAndAverage(t *testing.T) {
	assert.Equal(t, Stats{}, PeakAndAverage(nil))

	buckets := []MonthlyBucket{
		{Total: core.Money{Cents: 10000}},
		{Total: core.Money{Cents: 30000}},
		{Total: core.Money{Cents: 20000}},
	}
	s := PeakAndAverage(buckets)
	assert.Equal(t, int64(30000), s.Peak.Cents)
	assert.Equal(t, int64(60000), s.Total.Cents)
	assert.InDelta(t, 200.0, s.Average, 1e-9)
}

func TestIntensity(t *testing.T) {
	peak := core.Money{Cents: 1000}
	assert.Equal(t, IntensityVeryHigh, IntensityOf(core.Money{Cents: 1000}, peak))
	assert.Equal(t, IntensityHigh, IntensityOf(core.Money{Cents: 800}, peak))
	assert.Equal(t, IntensityMedium, IntensityOf(core.Money{Cents: 600}, peak))
	assert.Equal(t, IntensityLow, IntensityOf(core.Money{Cents: 400}, peak))
	assert.Equal(t, IntensityLow, IntensityOf(core.Money{Cents: 400}, core.Money{}))

	buckets := WithIntensity([]MonthlyBucket{{Total: core.Money{Cents: 100}}, {Total: core.Money{Cents: 1000}}})
	assert.Equal(t, IntensityLow, buckets[0].Intensity)
	assert.Equal(t, IntensityVeryHigh, buckets[1].Intensity)
}
