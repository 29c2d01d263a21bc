package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paymatch/paymatch/internal/adapter/http/handler"
	"github.com/paymatch/paymatch/internal/adapter/http/middleware"
	"github.com/paymatch/paymatch/internal/infrastructure/auth"
	"github.com/paymatch/paymatch/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MatchHandler      *handler.MatchHandler
	SuggestionHandler *handler.SuggestionHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	JWTManager        *auth.JWTManager
	Logger            zerolog.Logger

	// RateLimit is requests per second per client IP; zero disables limiting.
	RateLimit      float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			burst := cfg.RateLimitBurst
			if burst <= 0 {
				burst = int(cfg.RateLimit)
			}
			r.Use(middleware.NewRateLimiter(cfg.RateLimit, burst).Limit)
		}

		// Bearer auth is optional; when no JWTManager is configured the
		// operator API is open, matching a trusted-network deployment.
		if cfg.JWTManager != nil {
			r.Use(middleware.Auth(cfg.JWTManager))
		}

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Match-run triggers
		r.Post("/transactions/{id}/matches", cfg.MatchHandler.FindMatches)
		r.Post("/invoices/{id}/matches", cfg.MatchHandler.ProcessInvoice)

		// Operator surface
		r.Route("/suggestions", func(r chi.Router) {
			r.Get("/", cfg.SuggestionHandler.List)
			r.Post("/bulk", cfg.SuggestionHandler.BulkDecide)
			r.Get("/{id}", cfg.SuggestionHandler.Get)
			r.Post("/{id}/approve", cfg.SuggestionHandler.Approve)
			r.Post("/{id}/reject", cfg.SuggestionHandler.Reject)
		})

		r.Get("/transactions/{id}/suggestions", cfg.SuggestionHandler.ListByTransaction)
	})

	return r
}
