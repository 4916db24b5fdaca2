package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Validation errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAmountOutOfRange     = errors.New("amount out of representable range")
	ErrFutureDate           = errors.New("date cannot be in the future")
	ErrInvalidDateRange     = errors.New("date range is invalid")

	// Not-found errors
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrIncomeNotFound      = errors.New("income receipt not found")
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrClosingNotFound     = errors.New("daily closing not found")

	// Allocation errors
	ErrOverAllocation = errors.New("allocation exceeds remaining expense balance")
	ErrAlreadySettled = errors.New("expense is already fully settled")

	// Closing errors
	ErrAlreadyClosed = errors.New("daily closing is already sealed")

	// ErrConcurrencyConflict signals that a concurrent write invalidated the
	// operation's read; the caller should retry.
	ErrConcurrencyConflict = errors.New("concurrent modification detected, retry the operation")
)

// ReconciliationError reports a running-balance continuity failure during a
// close attempt. It is fatal to the attempt: no snapshot is written and the
// discrepancy requires manual review.
type ReconciliationError struct {
	Date     time.Time
	Expected Money
	Computed Money
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf(
		"reconciliation mismatch for %s: expected closing balance %s, computed %s",
		e.Date.Format("2006-01-02"), e.Expected, e.Computed,
	)
}
