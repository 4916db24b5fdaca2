package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/infrastructure/metrics"
	"github.com/iho/gocaja/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, error)
	GetExpenseWithAllocations(ctx context.Context, id string) (*usecase.ExpenseWithAllocations, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
	metrics   *metrics.Metrics
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// WithMetrics enables Prometheus instrumentation.
func (h *ExpenseHandler) WithMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// Create registers a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid expense", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExpensesCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense together with its payment history.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	result, err := h.expenseUC.GetExpenseWithAllocations(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseWithAllocationsResponse{
		Expense:     dto.ExpenseFromDomain(result.Expense),
		Allocations: dto.AllocationsFromDomain(result.Allocations),
	})
}

// List lists expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	expenses, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    int64(len(expenses)),
	})
}
