// Package http exposes the ledger and the analytics report as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Ledger is the write and list surface the API needs.
type Ledger interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	SaveBudget(ctx context.Context, b core.Budget) (core.Budget, bool, error)
	DeleteBudget(ctx context.Context, id string) error
}

// ReportSource computes the report of the month containing ref.
type ReportSource interface {
	Report(ctx context.Context, ref time.Time) (analytics.Report, error)
}

// Options tunes a Server. Zero values pick defaults.
type Options struct {
	RateLimitRPS float64
	Logger       *log.Logger
	Now          func() time.Time
}

type Server struct {
	http.Server
	ledger      Ledger
	reports     ReportSource
	logger      *log.Logger
	now         func() time.Time
	rateLimiter *rateLimiter
	metrics     *securityMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, ledger Ledger, reports ReportSource, opts Options) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 10
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		ledger:      ledger,
		reports:     reports,
		logger:      opts.Logger.WithComponent(log.ComponentHTTP),
		now:         opts.Now,
		rateLimiter: newRateLimiter(opts.RateLimitRPS),
		metrics:     &securityMetrics{},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(log.Middleware(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(s.withSecurity)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Put("/", s.handleUpdateTransaction)
			r.Delete("/", s.handleDeleteTransaction)
			r.Put("/{id}", s.handleUpdateTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})
		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", s.handleListBudgets)
			r.Post("/", s.handleSaveBudget)
			r.Delete("/", s.handleDeleteBudget)
			r.Delete("/{id}", s.handleDeleteBudget)
		})
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/categories", s.handleCategories)
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// withSecurity adds security headers and per-client rate limiting. Health
// probes are exempt from the limit.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientIP := extractClientIP(r)

		if reason := detectSuspiciousRequest(r, s.metrics); reason != "" {
			log.FromContext(ctx).WarnContext(ctx, "Suspicious request",
				"reason", reason,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}

		probe := r.URL.Path == "/healthz" || r.URL.Path == "/readyz"
		if !probe && !s.rateLimiter.allow(clientIP, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}

		setSecurityHeaders(w)
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and the limiter's cleanup
// goroutine, then logs the security counters gathered over its lifetime.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
		c := s.metrics.snapshot()
		s.logger.InfoContext(ctx, "HTTP server stopped",
			"rate_limit_hits", c.RateLimitHits,
			"suspicious_requests", c.SuspiciousRequests)
	})
	return shutdownErr
}
