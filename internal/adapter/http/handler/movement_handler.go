package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	Merge(ctx context.Context, filter usecase.MovementFilter) (*usecase.MovementReport, error)
}

// MovementHandler serves the unified chronological movement feed.
type MovementHandler struct {
	movementUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// List merges allocations and income receipts for the requested window.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.movementUC.Merge(r.Context(), usecase.MovementFilter{
		DateFrom:      from,
		DateTo:        to,
		BankAccountID: parseBankAccountQuery(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to merge movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementReportFromUseCase(report))
}
