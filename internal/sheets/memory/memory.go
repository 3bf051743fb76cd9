// Package memory keeps written reports in process. It backs the worker when
// no spreadsheet is configured and serves as a test double.
package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/analytics"
	"fintrack/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	reports map[string]analytics.Report
	writes  int
}

var _ sheets.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{reports: make(map[string]analytics.Report)}
}

// WriteReport stores r under its month key, replacing an earlier version.
func (s *Store) WriteReport(ctx context.Context, r analytics.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Period.MonthKey] = r
	s.writes++
	return nil
}

// Report returns the last report written for monthKey ("YYYY-MM").
func (s *Store) Report(monthKey string) (analytics.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[monthKey]
	return r, ok
}

// MonthKeys lists the months with a stored report, ascending.
func (s *Store) MonthKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.reports))
	for k := range s.reports {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes counts every WriteReport call that succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
