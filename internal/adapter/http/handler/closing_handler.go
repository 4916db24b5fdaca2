package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/infrastructure/metrics"
)

// ClosingService defines the behavior needed by ClosingHandler.
type ClosingService interface {
	OpenOrGet(ctx context.Context, date time.Time) (*domain.Closing, error)
	Close(ctx context.Context, date time.Time, closedBy string) (*domain.Closing, error)
}

// ClosingHandler handles daily closing HTTP requests.
type ClosingHandler struct {
	closingUC ClosingService
	metrics   *metrics.Metrics
}

// NewClosingHandler creates a new ClosingHandler.
func NewClosingHandler(closingUC ClosingService) *ClosingHandler {
	return &ClosingHandler{closingUC: closingUC}
}

// WithMetrics enables Prometheus instrumentation.
func (h *ClosingHandler) WithMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// Get returns the day's closing snapshot, creating an open one on demand.
func (h *ClosingHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	closing, err := h.closingUC.OpenOrGet(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get closing", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosingFromDomain(closing))
}

// Close seals the day's snapshot.
func (h *ClosingHandler) Close(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	var req dto.CloseDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.ClosedBy == "" {
		writeError(w, http.StatusBadRequest, "missing closed_by", "")
		return
	}

	closing, err := h.closingUC.Close(r.Context(), date, req.ClosedBy)
	if err != nil {
		if h.metrics != nil {
			var reconciliationErr *domain.ReconciliationError
			switch {
			case errors.As(err, &reconciliationErr):
				h.metrics.ReconciliationErrors.Inc()
				h.metrics.ClosingConflicts.WithLabelValues("reconciliation").Inc()
			case errors.Is(err, domain.ErrConcurrencyConflict):
				h.metrics.ClosingConflicts.WithLabelValues("concurrency").Inc()
			case errors.Is(err, domain.ErrAlreadyClosed):
				h.metrics.ClosingConflicts.WithLabelValues("already_closed").Inc()
			}
		}
		writeError(w, mapDomainError(err), "failed to close day", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ClosingsSealed.Inc()
	}

	writeJSON(w, http.StatusOK, dto.ClosingFromDomain(closing))
}

func parseDateParam(r *http.Request) (time.Time, error) {
	return time.Parse("2006-01-02", chi.URLParam(r, "date"))
}
