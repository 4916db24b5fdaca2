package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gocaja/internal/adapter/http/handler"
	"github.com/iho/gocaja/internal/adapter/http/middleware"
	"github.com/iho/gocaja/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ExpenseHandler     *handler.ExpenseHandler
	AllocationHandler  *handler.AllocationHandler
	IncomeHandler      *handler.IncomeHandler
	MovementHandler    *handler.MovementHandler
	ClosingHandler     *handler.ClosingHandler
	BankAccountHandler *handler.BankAccountHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	Logger             *zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health endpoints
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

		// Expenses and their payment allocations
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/", cfg.ExpenseHandler.List)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Post("/{id}/allocations", cfg.AllocationHandler.Create)
			r.Get("/{id}/allocations", cfg.AllocationHandler.ListByExpense)
		})

		// Income receipts
		r.Route("/incomes", func(r chi.Router) {
			r.Post("/", cfg.IncomeHandler.Create)
			r.Get("/", cfg.IncomeHandler.List)
			r.Get("/{id}", cfg.IncomeHandler.Get)
		})

		// Unified movement feed
		r.Get("/movements", cfg.MovementHandler.List)

		// Daily closings
		r.Route("/closings", func(r chi.Router) {
			r.Get("/{date}", cfg.ClosingHandler.Get)
			r.Post("/{date}/close", cfg.ClosingHandler.Close)
		})

		// Bank account catalog
		r.Get("/bank-accounts", cfg.BankAccountHandler.List)
	})

	return r
}
