package analytics

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
}

func tx(cents int64, when time.Time, category string) core.Transaction {
	return core.Transaction{
		ID:          fmt.Sprintf("%s-%d-%d", category, when.Unix(), cents),
		Amount:      core.Money{Cents: cents},
		Date:        when,
		Category:    category,
		Description: "test " + category,
	}
}

func budget(category string, cents int64, month, year int) core.Budget {
	return core.Budget{
		ID:       fmt.Sprintf("%s-%d-%d", category, year, month),
		Category: category,
		Amount:   core.Money{Cents: cents},
		Month:    month,
		Year:     year,
	}
}
