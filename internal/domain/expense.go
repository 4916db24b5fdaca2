package domain

import (
	"time"
)

// Expense represents a payable obligation (gasto) tracked to full
// settlement. Paid and Balance are mutated only through the payment
// allocator; Paid + Balance == Total holds at all times.
type Expense struct {
	ID          string
	Description string
	Provider    string
	Total       Money
	Paid        Money
	Balance     Money
	Date        time.Time
	CategoryID  string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSettled reports whether the expense has a zero remaining balance.
// Settlement is derived state, never stored.
func (e *Expense) IsSettled() bool {
	return e.Balance.IsZero()
}

// ValidateAllocation checks whether amount can be allocated against the
// remaining balance.
func (e *Expense) ValidateAllocation(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.IsSettled() {
		return ErrAlreadySettled
	}
	if amount.GreaterThan(e.Balance) {
		return ErrOverAllocation
	}
	return nil
}

// ApplyAllocation returns the paid/balance pair after allocating amount.
// Callers must run ValidateAllocation first.
func (e *Expense) ApplyAllocation(amount Money) (paid, balance Money, err error) {
	paid, err = e.Paid.Add(amount)
	if err != nil {
		return Money{}, Money{}, err
	}
	balance, err = e.Total.Sub(paid)
	if err != nil {
		return Money{}, Money{}, err
	}
	return paid, balance, nil
}
