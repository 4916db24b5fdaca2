package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/infrastructure/metrics"
	"github.com/iho/gocaja/internal/usecase"
)

// IncomeService defines the behavior needed by IncomeHandler.
type IncomeService interface {
	Record(ctx context.Context, input usecase.RecordIncomeInput) (*domain.Income, error)
	GetIncome(ctx context.Context, id string) (*domain.Income, error)
	ListIncomes(ctx context.Context, input usecase.ListIncomesInput) ([]*domain.Income, error)
}

// IncomeHandler handles income receipt HTTP requests.
type IncomeHandler struct {
	incomeUC     IncomeService
	bankAccounts BankAccountLookup
	metrics      *metrics.Metrics
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeUC IncomeService, bankAccounts BankAccountLookup) *IncomeHandler {
	return &IncomeHandler{
		incomeUC:     incomeUC,
		bankAccounts: bankAccounts,
	}
}

// WithMetrics enables Prometheus instrumentation.
func (h *IncomeHandler) WithMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// Create records a new income receipt.
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid income receipt", err.Error())
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

	income, err := h.incomeUC.Record(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record income", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.IncomesRecorded.WithLabelValues(income.Method.String()).Inc()
		h.metrics.IncomeAmount.Observe(income.Amount.Decimal().InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.IncomeFromDomain(income))
}

// Get retrieves an income receipt by ID.
func (h *IncomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing income ID", "")
		return
	}

	income, err := h.incomeUC.GetIncome(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get income", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeFromDomain(income))
}

// List lists income receipts within a date window.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	from, ok, err := parseDateQuery(r, "date_from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_from", err.Error())
		return
	}
	if !ok {
		from = time.Now().UTC()
	}

	to, ok, err := parseDateQuery(r, "date_to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_to", err.Error())
		return
	}
	if !ok {
		to = from
	}

	incomes, err := h.incomeUC.ListIncomes(r.Context(), usecase.ListIncomesInput{
		DateFrom:      from,
		DateTo:        to,
		BankAccountID: parseBankAccountQuery(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list incomes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomesFromDomain(incomes))
}
