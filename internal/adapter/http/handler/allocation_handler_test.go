package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/adapter/http/handler"
	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
	"github.com/iho/gocaja/internal/usecase/mocks"
)

type noRetry struct{}

func (noRetry) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

func newAllocationRouter(t *testing.T) (chi.Router, *usecase.ExpenseUseCase, *mocks.MockBankAccountRepository) {
	t.Helper()

	expenseRepo := mocks.NewMockExpenseRepository()
	allocationRepo := mocks.NewMockAllocationRepository()
	bankRepo := mocks.NewMockBankAccountRepository()
	idGen := mocks.NewMockIDGenerator()

	expenseUC := usecase.NewExpenseUseCase(expenseRepo, allocationRepo, idGen)
	allocationUC := usecase.NewAllocationUseCase(mocks.NewMockTransactionManager(), expenseRepo, allocationRepo, idGen)

	h := handler.NewAllocationHandler(allocationUC, bankRepo, noRetry{})

	r := chi.NewRouter()
	r.Post("/expenses/{id}/allocations", h.Create)
	r.Get("/expenses/{id}/allocations", h.ListByExpense)

	return r, expenseUC, bankRepo
}

func TestAllocationHandler_PartialPaymentFlow(t *testing.T) {
	router, expenseUC, _ := newAllocationRouter(t)

	expense, err := expenseUC.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		Description: "compra insumos",
		Total:       domain.MustMoney("1300.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pay := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/expenses/"+expense.ID+"/allocations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := pay(`{"amount":"800.00","method":"cash"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first payment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := pay(`{"amount":"600.00","method":"cash"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("over-allocation: expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := pay(`{"amount":"500.00","method":"transfer"}`); rec.Code != http.StatusCreated {
		t.Fatalf("settling payment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := pay(`{"amount":"1.00","method":"cash"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("payment after settle: expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/expenses/"+expense.ID+"/allocations", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)

	var allocations []*dto.AllocationResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &allocations); err != nil {
		t.Fatalf("failed to decode allocations: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("expected 2 recorded allocations, got %d", len(allocations))
	}
}

func TestAllocationHandler_UnknownBankAccount(t *testing.T) {
	router, expenseUC, _ := newAllocationRouter(t)

	expense, err := expenseUC.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		Description: "compra insumos",
		Total:       domain.MustMoney("100.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"amount":"50.00","method":"transfer","bank_account_id":"missing"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/"+expense.ID+"/allocations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown bank account, got %d", rec.Code)
	}
}

func TestAllocationHandler_InvalidMethod(t *testing.T) {
	router, expenseUC, _ := newAllocationRouter(t)

	expense, err := expenseUC.CreateExpense(context.Background(), usecase.CreateExpenseInput{
		Description: "compra insumos",
		Total:       domain.MustMoney("100.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"amount":"50.00","method":"barter"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/"+expense.ID+"/allocations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", rec.Code)
	}
}
