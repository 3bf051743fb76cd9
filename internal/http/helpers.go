package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// parseYearMonth extracts year and month from query parameters. Missing
// values default to now; present but invalid values are validation errors.
func parseYearMonth(r *http.Request, now time.Time) (year, month int, err error) {
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil || y <= 0 {
			return 0, 0, core.ErrInvalidYear
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, 0, core.ErrInvalidMonth
		}
		month = m
	}
	if err := core.ValidateMonth(month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// hasPeriodQuery reports whether the request names a year or a month.
func hasPeriodQuery(r *http.Request) bool {
	q := r.URL.Query()
	return q.Has("year") || q.Has("month")
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp. A plain date
// is read as midnight UTC so its calendar day never shifts.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, core.NewValidationError("date", "is required")
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, core.NewValidationError("date", "must be YYYY-MM-DD or RFC 3339")
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
