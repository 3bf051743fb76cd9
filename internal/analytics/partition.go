package analytics

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
)

// MonthlyBucket aggregates the transactions of one calendar month.
type MonthlyBucket struct {
	MonthKey     string     `json:"monthKey"` // YYYY-MM
	Label        string     `json:"label"`    // e.g. "Mar 2024"
	Total        core.Money `json:"total"`
	Count        int        `json:"count"`
	OrderingDate time.Time  `json:"orderingDate"`
	Intensity    Intensity  `json:"intensity,omitempty"`
}

type monthRef struct {
	year  int
	month int
}

func refOf(t time.Time) monthRef {
	return monthRef{year: t.Year(), month: int(t.Month())}
}

func (r monthRef) before(o monthRef) bool {
	if r.year != o.year {
		return r.year < o.year
	}
	return r.month < o.month
}

func (r monthRef) start() time.Time {
	return time.Date(r.year, time.Month(r.month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a year and month as YYYY-MM.
func MonthKey(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthLabel formats a year and month for display, e.g. "Mar 2024".
func MonthLabel(month, year int) string {
	return monthRef{year: year, month: month}.start().Format("Jan 2006")
}

// PartitionByMonth groups transactions into one bucket per calendar month
// present in the input, ascending by time. Months without transactions
// produce no bucket.
func PartitionByMonth(txs []core.Transaction) []MonthlyBucket {
	index := make(map[monthRef]int)
	var buckets []MonthlyBucket

	for _, t := range txs {
		r := refOf(t.Date)
		i, ok := index[r]
		if !ok {
			i = len(buckets)
			index[r] = i
			buckets = append(buckets, MonthlyBucket{
				MonthKey:     MonthKey(r.month, r.year),
				Label:        MonthLabel(r.month, r.year),
				OrderingDate: r.start(),
			})
		}
		buckets[i].Total.Cents += t.Amount.Cents
		buckets[i].Count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].OrderingDate.Before(buckets[j].OrderingDate)
	})
	return buckets
}

// InMonth returns the transactions whose own date falls in month/year,
// preserving input order.
func InMonth(txs []core.Transaction, month, year int) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.Date.Year() == year && int(t.Date.Month()) == month {
			out = append(out, t)
		}
	}
	return out
}

// PreviousMonth returns the calendar month before month/year.
func PreviousMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// CurrentAndPrevious splits txs into the reference month of now and the month before it.
func CurrentAndPrevious(txs []core.Transaction, now time.Time) (current, previous []core.Transaction) {
	month, year := int(now.Month()), now.Year()
	pm, py := PreviousMonth(month, year)
	return InMonth(txs, month, year), InMonth(txs, pm, py)
}
