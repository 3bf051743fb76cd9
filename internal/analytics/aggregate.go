package analytics

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// CategoryBreakdownEntry is the spending of one category.
type CategoryBreakdownEntry struct {
	CategoryID string     `json:"categoryId"`
	Name       string     `json:"name"`
	Icon       string     `json:"icon"`
	Color      string     `json:"color"`
	Total      core.Money `json:"total"`
	Count      int        `json:"count"`
	Share      float64    `json:"share"` // percentage of the breakdown total; set by SortedBreakdown

	firstSeen int
}

// Stats summarises a bucket series.
type Stats struct {
	Total   core.Money `json:"total"`
	Peak    core.Money `json:"peak"`
	Average float64    `json:"average"`
}

// Intensity ranks a month against the peak month of its series.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// TotalOf sums the amounts of txs. An empty input totals zero.
func TotalOf(txs []core.Transaction) core.Money {
	var total core.Money
	for _, t := range txs {
		total.Cents += t.Amount.Cents
	}
	return total
}

// AverageOf returns the mean transaction amount in currency units, or 0 for no transactions.
func AverageOf(txs []core.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	return TotalOf(txs).Dollars() / float64(len(txs))
}

// AverageDaily returns the mean spending per calendar day that has at least one transaction.
func AverageDaily(txs []core.Transaction) float64 {
	days := make(map[string]int64)
	for _, t := range txs {
		days[t.Date.Format(time.DateOnly)] += t.Amount.Cents
	}
	if len(days) == 0 {
		return 0
	}
	var sum int64
	for _, cents := range days {
		sum += cents
	}
	return core.Money{Cents: sum}.Dollars() / float64(len(days))
}

// ByCategory groups txs by resolved category id. Unknown ids accumulate under "other".
func ByCategory(txs []core.Transaction) map[string]CategoryBreakdownEntry {
	out := make(map[string]CategoryBreakdownEntry)
	for _, t := range txs {
		c := Resolve(t.Category)
		e, ok := out[c.ID]
		if !ok {
			e = CategoryBreakdownEntry{
				CategoryID: c.ID,
				Name:       c.Name,
				Icon:       c.Icon,
				Color:      c.Color,
				firstSeen:  len(out),
			}
		}
		e.Total.Cents += t.Amount.Cents
		e.Count++
		out[c.ID] = e
	}
	return out
}

// SortedBreakdown orders a breakdown by total descending, ties by first
// encounter, and fills each entry's share of the overall total.
func SortedBreakdown(m map[string]CategoryBreakdownEntry) []CategoryBreakdownEntry {
	entries := make([]CategoryBreakdownEntry, 0, len(m))
	var total int64
	for _, e := range m {
		entries = append(entries, e)
		total += e.Total.Cents
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total.Cents != entries[j].Total.Cents {
			return entries[i].Total.Cents > entries[j].Total.Cents
		}
		return entries[i].firstSeen < entries[j].firstSeen
	})
	for i := range entries {
		entries[i].Share = CategoryShare(entries[i], core.Money{Cents: total})
	}
	return entries
}

// TopCategories returns at most n entries of the sorted breakdown.
func TopCategories(m map[string]CategoryBreakdownEntry, n int) []CategoryBreakdownEntry {
	entries := SortedBreakdown(m)
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// CategoryShare returns e's percentage of total, or 0 when total is zero.
func CategoryShare(e CategoryBreakdownEntry, total core.Money) float64 {
	if total.Cents <= 0 {
		return 0
	}
	return float64(e.Total.Cents) * 100 / float64(total.Cents)
}

// TrailingMonths returns up to n of the most recent monthly buckets that
// fall on or before the reference month, ascending by time.
func TrailingMonths(txs []core.Transaction, n int, ref time.Time) []MonthlyBucket {
	if n <= 0 {
		return nil
	}
	limit := refOf(ref)
	var eligible []MonthlyBucket
	for _, b := range PartitionByMonth(txs) {
		if limit.before(refOf(b.OrderingDate)) {
			continue
		}
		eligible = append(eligible, b)
	}
	if len(eligible) > n {
		eligible = eligible[len(eligible)-n:]
	}
	return eligible
}

// PeakAndAverage returns the largest bucket total and the mean bucket total.
// An empty series yields zero for both.
func PeakAndAverage(buckets []MonthlyBucket) Stats {
	var s Stats
	if len(buckets) == 0 {
		return s
	}
	for _, b := range buckets {
		s.Total.Cents += b.Total.Cents
		if b.Total.Cents > s.Peak.Cents {
			s.Peak = b.Total
		}
	}
	s.Average = s.Total.Dollars() / float64(len(buckets))
	return s
}

// IntensityOf ranks total against peak: above 80% is very high, above 60%
// high, above 40% medium, low otherwise.
func IntensityOf(total, peak core.Money) Intensity {
	if peak.Cents <= 0 {
		return IntensityLow
	}
	ratio := float64(total.Cents) / float64(peak.Cents)
	switch {
	case ratio > 0.8:
		return IntensityVeryHigh
	case ratio > 0.6:
		return IntensityHigh
	case ratio > 0.4:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

// WithIntensity returns a copy of buckets with Intensity set against their peak.
func WithIntensity(buckets []MonthlyBucket) []MonthlyBucket {
	peak := PeakAndAverage(buckets).Peak
	out := make([]MonthlyBucket, len(buckets))
	for i, b := range buckets {
		b.Intensity = IntensityOf(b.Total, peak)
		out[i] = b
	}
	return out
}
