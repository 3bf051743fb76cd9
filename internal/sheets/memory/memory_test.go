package memory

import (
	"context"
	"testing"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func report(key string, cents int64) analytics.Report {
	return analytics.Report{
		Period: analytics.Period{MonthKey: key},
		Month:  analytics.MonthTotals{Current: core.Money{Cents: cents}},
	}
}

func TestStoreReplacesSameMonth(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.WriteReport(ctx, report("2024-03", 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteReport(ctx, report("2024-02", 50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteReport(ctx, report("2024-03", 300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := s.Report("2024-03")
	if !ok || got.Month.Current.Cents != 300 {
		t.Fatalf("expected latest March report, got %+v ok=%v", got, ok)
	}
	if keys := s.MonthKeys(); len(keys) != 2 || keys[0] != "2024-02" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if s.Writes() != 3 {
		t.Fatalf("expected 3 writes, got %d", s.Writes())
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.WriteReport(ctx, report("2024-03", 1)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, ok := s.Report("2024-03"); ok {
		t.Fatal("report should not be stored")
	}
}
