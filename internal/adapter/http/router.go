package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gopawn/internal/adapter/http/handler"
	"github.com/iho/gopawn/internal/adapter/http/middleware"
	"github.com/iho/gopawn/internal/infrastructure/metrics"
	"github.com/iho/gopawn/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional fields may be nil.
type RouterConfig struct {
	EntryHandler    *handler.EntryHandler
	ReportHandler   *handler.ReportHandler
	InterestHandler *handler.InterestHandler
	HealthHandler   *handler.HealthHandler

	// TokenVerifier checks bearer tokens. Nil trusts the X-Actor-* headers.
	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NewActorMiddleware(cfg.TokenVerifier, cfg.Metrics).Wrap)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Put("/{id}", cfg.EntryHandler.Edit)
			r.Post("/{id}/interest", cfg.EntryHandler.ApplyInterest)
			r.Post("/{id}/release", cfg.EntryHandler.Release)
			r.Get("/{id}/audit", cfg.EntryHandler.History)
		})

		r.Route("/interest", func(r chi.Router) {
			r.Get("/daily-rate", cfg.InterestHandler.DailyRate)
			r.Post("/quote", cfg.InterestHandler.Quote)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/entries", cfg.ReportHandler.Entries)
			r.Get("/entries/released", cfg.ReportHandler.Released)
			r.Get("/dashboard", cfg.ReportHandler.Dashboard)
			r.Get("/audit", cfg.ReportHandler.Audit)
		})
	})

	return r
}
