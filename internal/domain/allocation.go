package domain

import (
	"fmt"
	"time"
)

// PaymentMethod enumerates how a movement was paid. Wire values match the
// persisted enumeration.
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 1
	PaymentMethodQR       PaymentMethod = 2
	PaymentMethodTransfer PaymentMethod = 3
	PaymentMethodCheck    PaymentMethod = 4
	PaymentMethodDeposit  PaymentMethod = 5
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodDeposit
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "cash"
	case PaymentMethodQR:
		return "qr"
	case PaymentMethodTransfer:
		return "transfer"
	case PaymentMethodCheck:
		return "check"
	case PaymentMethodDeposit:
		return "deposit"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParsePaymentMethod parses the API-facing method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "cash":
		return PaymentMethodCash, nil
	case "qr":
		return PaymentMethodQR, nil
	case "transfer":
		return PaymentMethodTransfer, nil
	case "check":
		return PaymentMethodCheck, nil
	case "deposit":
		return PaymentMethodDeposit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
}

// Allocation is a single disbursement applied against an expense. Records
// are immutable once created: corrections are new allocations, never edits.
// A nil BankAccountID means the disbursement was paid in cash.
type Allocation struct {
	ID            string
	ExpenseID     string
	Amount        Money
	Date          time.Time
	Method        PaymentMethod
	BankAccountID *string
	CreatedAt     time.Time
}

// Validate validates the allocation record.
func (a *Allocation) Validate() error {
	if !a.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Method.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPaymentMethod, int(a.Method))
	}
	return nil
}

// IsCash reports whether the allocation moved cash rather than bank funds.
func (a *Allocation) IsCash() bool {
	return a.BankAccountID == nil
}
