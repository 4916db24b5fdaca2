package domain

import (
	"fmt"
	"time"
)

// Income is an income receipt (ingreso), independent of any expense.
// Receipts are append-only: a wrong entry is corrected with a reversal
// receipt carrying a negative-adjustment concept, never edited in place.
// A nil BankAccountID means cash.
type Income struct {
	ID            string
	Amount        Money
	Date          time.Time
	Concept       string
	Method        PaymentMethod
	BankAccountID *string
	CreatedAt     time.Time
}

// Validate validates the receipt against the recording instant.
func (i *Income) Validate(now time.Time) error {
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !i.Method.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPaymentMethod, int(i.Method))
	}
	if i.Date.After(now) {
		return ErrFutureDate
	}
	return nil
}

// IsCash reports whether the receipt was collected in cash.
func (i *Income) IsCash() bool {
	return i.BankAccountID == nil
}
