package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("%q expected %v, got %v", in, want, got)
		}
	}
}

func TestLoggerComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentLedger, Output: &buf})

	logger.Fields(context.Background(), slog.LevelInfo, "created", NewFields().
		WithOperation(OpCreate).
		WithRecord("tx-1", "food", 1250).
		WithError(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentLedger {
		t.Fatalf("expected component %q, got %v", ComponentLedger, rec[FieldComponent])
	}
	if rec[FieldOperation] != OpCreate || rec[FieldID] != "tx-1" || rec[FieldError] != "boom" {
		t.Fatalf("unexpected fields: %v", rec)
	}
	if logger.Component() != ComponentLedger {
		t.Fatalf("expected component accessor %q", ComponentLedger)
	}
	if logger.WithComponent(ComponentWorker).Component() != ComponentWorker {
		t.Fatalf("WithComponent should change component")
	}
}

func TestToSliceIsOrdered(t *testing.T) {
	got := NewFields().WithPeriod(2024, 3).ToSlice()
	if len(got) != 4 || got[0] != FieldMonth || got[2] != FieldYear {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestMiddlewareInjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf})

	var fromCtx *Logger
	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/analytics?year=2024", nil))

	if fromCtx == nil || fromCtx.Component() != ComponentHTTP {
		t.Fatalf("expected http component logger in context")
	}
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if rec[FieldStatusCode] != float64(http.StatusTeapot) || rec["level"] != "WARN" {
		t.Fatalf("unexpected request log: %v", rec)
	}
}

func TestFromContextFallback(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}
