package domain

import (
	"sort"
	"time"
)

// MovementKind tags the two sides of the unified ledger feed.
type MovementKind string

const (
	MovementIncome  MovementKind = "income"
	MovementExpense MovementKind = "expense"
)

// Movement is a unified ledger entry derived on demand from allocations and
// income receipts. It is never persisted; the merger recomputes it from the
// source records every time.
type Movement struct {
	Kind MovementKind
	// RecordID is the id of the originating allocation or receipt; it is
	// the final tie-breaker of the deterministic sort order.
	RecordID string
	// ExpenseID is set only for expense movements.
	ExpenseID string
	// Concept is set only for income movements.
	Concept       string
	Amount        Money
	Date          time.Time
	Method        PaymentMethod
	BankAccountID *string
}

// IsCash reports whether the movement touched cash rather than a bank
// account.
func (m *Movement) IsCash() bool {
	return m.BankAccountID == nil
}

// SortMovements orders movements ascending by date, income before expense
// on equal dates, then by record id. The order is fully deterministic for
// identical input.
func SortMovements(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		a, b := movements[i], movements[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind == MovementIncome
		}
		return a.RecordID < b.RecordID
	})
}

// MovementTotals partitions movement amounts by direction and by cash vs
// bank.
type MovementTotals struct {
	IncomeCash  Money
	IncomeBank  Money
	ExpenseCash Money
	ExpenseBank Money
}

// Accumulate adds a movement's amount to the matching partition.
func (t *MovementTotals) Accumulate(m Movement) error {
	var err error
	switch {
	case m.Kind == MovementIncome && m.IsCash():
		t.IncomeCash, err = t.IncomeCash.Add(m.Amount)
	case m.Kind == MovementIncome:
		t.IncomeBank, err = t.IncomeBank.Add(m.Amount)
	case m.IsCash():
		t.ExpenseCash, err = t.ExpenseCash.Add(m.Amount)
	default:
		t.ExpenseBank, err = t.ExpenseBank.Add(m.Amount)
	}
	return err
}

// Net returns total income minus total expense, computed in fixed point.
func (t *MovementTotals) Net() (Money, error) {
	income, err := t.IncomeCash.Add(t.IncomeBank)
	if err != nil {
		return Money{}, err
	}
	expense, err := t.ExpenseCash.Add(t.ExpenseBank)
	if err != nil {
		return Money{}, err
	}
	return income.Sub(expense)
}
