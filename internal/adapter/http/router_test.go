package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gocaja/internal/adapter/http/middleware"
	"github.com/iho/gocaja/internal/usecase"
	"github.com/iho/gocaja/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"amount":"250.00","method":"cash","concept":"venta del dia"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incomes/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/expenses/",
		"GET /api/v1/expenses/",
		"GET /api/v1/expenses/{id}",
		"POST /api/v1/expenses/{id}/allocations",
		"GET /api/v1/expenses/{id}/allocations",
		"POST /api/v1/incomes/",
		"GET /api/v1/incomes/",
		"GET /api/v1/movements",
		"GET /api/v1/closings/{date}",
		"POST /api/v1/closings/{date}/close",
		"GET /api/v1/bank-accounts",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_ExpenseLifecycleOverHTTP(t *testing.T) {
	router := NewRouter(newRouterConfig())

	create := httptest.NewRequest(http.MethodPost, "/api/v1/expenses/",
		strings.NewReader(`{"description":"compra insumos","total":"1300.00"}`))
	create.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, create)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected expense creation to return 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	expenseRepo := mocks.NewMockExpenseRepository()
	allocationRepo := mocks.NewMockAllocationRepository()
	incomeRepo := mocks.NewMockIncomeRepository()
	closingRepo := mocks.NewMockClosingRepository()
	bankRepo := mocks.NewMockBankAccountRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	expenseUC := usecase.NewExpenseUseCase(expenseRepo, allocationRepo, idGen)
	allocationUC := usecase.NewAllocationUseCase(txManager, expenseRepo, allocationRepo, idGen)
	incomeUC := usecase.NewIncomeUseCase(incomeRepo, idGen)
	movementUC := usecase.NewMovementUseCase(allocationRepo, incomeRepo)
	closingUC := usecase.NewClosingUseCase(txManager, closingRepo, movementUC)

	cfg := RouterConfig{
		ExpenseHandler:     handler.NewExpenseHandler(expenseUC),
		AllocationHandler:  handler.NewAllocationHandler(allocationUC, bankRepo, passthroughRetrier{}),
		IncomeHandler:      handler.NewIncomeHandler(incomeUC, bankRepo),
		MovementHandler:    handler.NewMovementHandler(movementUC),
		ClosingHandler:     handler.NewClosingHandler(closingUC),
		BankAccountHandler: handler.NewBankAccountHandler(bankRepo),
		HealthHandler:      &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type passthroughRetrier struct{}

func (passthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
