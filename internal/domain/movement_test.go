package domain

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortMovements_Deterministic(t *testing.T) {
	bank := "bank-1"
	movements := []Movement{
		{Kind: MovementExpense, RecordID: "03", Date: day("2025-12-05"), Amount: MustMoney("800.00")},
		{Kind: MovementIncome, RecordID: "02", Date: day("2025-12-05"), Amount: MustMoney("3500.00"), BankAccountID: &bank},
		{Kind: MovementIncome, RecordID: "01", Date: day("2025-12-05"), Amount: MustMoney("2500.00")},
		{Kind: MovementExpense, RecordID: "04", Date: day("2025-12-04"), Amount: MustMoney("500.00"), BankAccountID: &bank},
	}

	SortMovements(movements)

	wantOrder := []string{"04", "01", "02", "03"}
	for i, want := range wantOrder {
		if movements[i].RecordID != want {
			t.Fatalf("position %d: got %s, want %s", i, movements[i].RecordID, want)
		}
	}

	// Same input again must yield the identical order.
	again := []Movement{movements[2], movements[0], movements[3], movements[1]}
	SortMovements(again)
	for i := range movements {
		if again[i].RecordID != movements[i].RecordID {
			t.Fatalf("ordering is not reproducible at position %d", i)
		}
	}
}

func TestMovementTotals_Partition(t *testing.T) {
	bank := "bank-1"
	movements := []Movement{
		{Kind: MovementIncome, RecordID: "i1", Date: day("2025-12-05"), Amount: MustMoney("2500.00")},
		{Kind: MovementIncome, RecordID: "i2", Date: day("2025-12-05"), Amount: MustMoney("3500.00"), BankAccountID: &bank},
		{Kind: MovementExpense, RecordID: "e1", Date: day("2025-12-05"), Amount: MustMoney("800.00")},
		{Kind: MovementExpense, RecordID: "e2", Date: day("2025-12-05"), Amount: MustMoney("500.00"), BankAccountID: &bank},
	}

	var totals MovementTotals
	for _, m := range movements {
		if err := totals.Accumulate(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if totals.IncomeCash.String() != "2500.00" {
		t.Errorf("IncomeCash = %s, want 2500.00", totals.IncomeCash)
	}
	if totals.IncomeBank.String() != "3500.00" {
		t.Errorf("IncomeBank = %s, want 3500.00", totals.IncomeBank)
	}
	if totals.ExpenseCash.String() != "800.00" {
		t.Errorf("ExpenseCash = %s, want 800.00", totals.ExpenseCash)
	}
	if totals.ExpenseBank.String() != "500.00" {
		t.Errorf("ExpenseBank = %s, want 500.00", totals.ExpenseBank)
	}

	net, err := totals.Net()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net.String() != "4700.00" {
		t.Errorf("Net() = %s, want 4700.00", net)
	}
}

func TestClosing_Seal(t *testing.T) {
	c := &Closing{Date: day("2025-12-05")}

	if c.IsClosed() {
		t.Fatal("fresh closing must be open")
	}

	now := time.Now().UTC()
	if err := c.Seal("user-1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsClosed() {
		t.Fatal("closing should be sealed")
	}

	if err := c.Seal("user-2", now); err != ErrAlreadyClosed {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
	if *c.ClosedBy != "user-1" {
		t.Errorf("sealed snapshot mutated: closedBy = %s", *c.ClosedBy)
	}
}
