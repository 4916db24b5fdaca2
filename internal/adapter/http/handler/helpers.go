package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var reconciliationErr *domain.ReconciliationError
	if errors.As(err, &reconciliationErr) {
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrIncomeNotFound),
		errors.Is(err, domain.ErrBankAccountNotFound),
		errors.Is(err, domain.ErrClosingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrFutureDate),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOverAllocation),
		errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAlreadyClosed),
		errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (time.Time, bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// parseBankAccountQuery reads the optional bank_account_id filter.
func parseBankAccountQuery(r *http.Request) *string {
	val := r.URL.Query().Get("bank_account_id")
	if val == "" {
		return nil
	}
	return &val
}
