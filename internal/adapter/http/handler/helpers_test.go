package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/expenses?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/expenses?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseDateQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/movements?date_from=2025-12-05", nil)
	got, ok, err := parseDateQuery(req, "date_from")
	if err != nil || !ok {
		t.Fatalf("expected parsed date, got ok=%v err=%v", ok, err)
	}
	if !got.Equal(time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/movements", nil)
	if _, ok, err := parseDateQuery(req, "date_from"); ok || err != nil {
		t.Fatalf("expected absent date, got ok=%v err=%v", ok, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/movements?date_from=05/12/2025", nil)
	if _, _, err := parseDateQuery(req, "date_from"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expense not found", domain.ErrExpenseNotFound, http.StatusNotFound},
		{"income not found", domain.ErrIncomeNotFound, http.StatusNotFound},
		{"bank account not found", domain.ErrBankAccountNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid method", domain.ErrInvalidPaymentMethod, http.StatusBadRequest},
		{"future date", domain.ErrFutureDate, http.StatusBadRequest},
		{"over allocation", domain.ErrOverAllocation, http.StatusUnprocessableEntity},
		{"already settled", domain.ErrAlreadySettled, http.StatusUnprocessableEntity},
		{"already closed", domain.ErrAlreadyClosed, http.StatusConflict},
		{"concurrency conflict", domain.ErrConcurrencyConflict, http.StatusConflict},
		{
			"reconciliation mismatch",
			&domain.ReconciliationError{
				Date:     time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
				Expected: domain.MustMoney("1000.00"),
				Computed: domain.MustMoney("600.00"),
			},
			http.StatusConflict,
		},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
