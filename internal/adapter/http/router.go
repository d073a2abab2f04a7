package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/handler"
	"github.com/aman-soni-070202/my-finances/internal/adapter/http/middleware"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	AccountHandler     *handler.AccountHandler
	CardHandler        *handler.CardHandler
	CategoryHandler    *handler.CategoryHandler
	StatsHandler       *handler.StatsHandler
	BackupHandler      *handler.BackupHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
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

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Patch("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Bank accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Patch("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
		})

		// Credit cards
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cfg.CardHandler.Create)
			r.Get("/", cfg.CardHandler.List)
			r.Get("/{id}", cfg.CardHandler.Get)
			r.Patch("/{id}", cfg.CardHandler.Update)
			r.Delete("/{id}", cfg.CardHandler.Delete)
		})

		// Categories, partitioned by transaction kind
		r.Route("/categories/{kind}", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Add)
			r.Delete("/{name}", cfg.CategoryHandler.Remove)
		})

		// Statistics
		r.Route("/stats", func(r chi.Router) {
			r.Get("/monthly", cfg.StatsHandler.Monthly)
			r.Get("/yearly", cfg.StatsHandler.Yearly)
		})

		// Backup
		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", cfg.BackupHandler.Export)
			r.Post("/import", cfg.BackupHandler.Import)
		})

		// Ledger consistency
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/reconciliation", cfg.LedgerHandler.Reconcile)
			r.Get("/audit", cfg.LedgerHandler.AuditLogs)
		})
	})

	return r
}
