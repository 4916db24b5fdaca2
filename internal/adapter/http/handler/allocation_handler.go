package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/infrastructure/metrics"
	"github.com/iho/gocaja/internal/usecase"
)

// AllocationService defines the behavior needed by AllocationHandler.
type AllocationService interface {
	Allocate(ctx context.Context, input usecase.AllocateInput) (*domain.Allocation, error)
	ListByExpense(ctx context.Context, expenseID string) ([]*domain.Allocation, error)
}

// BankAccountLookup verifies bank account references at the edge; the core
// allocator takes the reference on trust.
type BankAccountLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// AllocationHandler handles payment allocation HTTP requests.
type AllocationHandler struct {
	allocationUC AllocationService
	bankAccounts BankAccountLookup
	retrier      usecase.Retrier
	metrics      *metrics.Metrics
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationUC AllocationService, bankAccounts BankAccountLookup, retrier usecase.Retrier) *AllocationHandler {
	return &AllocationHandler{
		allocationUC: allocationUC,
		bankAccounts: bankAccounts,
		retrier:      retrier,
	}
}

// WithMetrics enables Prometheus instrumentation.
func (h *AllocationHandler) WithMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// Create applies a payment against an expense.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.AllocatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(expenseID)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid allocation", err.Error())
		return
	}

	if input.BankAccountID != nil {
		exists, err := h.bankAccounts.Exists(r.Context(), *input.BankAccountID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to verify bank account", err.Error())
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "unknown bank account", *input.BankAccountID)
			return
		}
	}

	var allocation *domain.Allocation
	err = h.retrier.Retry(r.Context(), func() error {
		var opErr error
		allocation, opErr = h.allocationUC.Allocate(r.Context(), input)
		return opErr
	})
	if err != nil {
		h.countRejection(err)
		writeError(w, mapDomainError(err), "failed to allocate payment", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AllocationsCreated.WithLabelValues(allocation.Method.String()).Inc()
		h.metrics.AllocationAmount.Observe(allocation.Amount.Decimal().InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.AllocationFromDomain(allocation))
}

func (h *AllocationHandler) countRejection(err error) {
	if h.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrOverAllocation):
		h.metrics.AllocationErrors.WithLabelValues("over_allocation").Inc()
	case errors.Is(err, domain.ErrAlreadySettled):
		h.metrics.AllocationErrors.WithLabelValues("already_settled").Inc()
	case errors.Is(err, domain.ErrExpenseNotFound):
		h.metrics.AllocationErrors.WithLabelValues("not_found").Inc()
	default:
		h.metrics.AllocationErrors.WithLabelValues("other").Inc()
	}
}

// ListByExpense returns the payment history of an expense.
func (h *AllocationHandler) ListByExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	allocations, err := h.allocationUC.ListByExpense(r.Context(), expenseID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list allocations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationsFromDomain(allocations))
}
