package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
	"github.com/iho/gocaja/internal/usecase/mocks"
)

func TestExpenseUseCase_CreateExpense(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateExpenseInput
		expectedErr error
	}{
		{
			name: "successful registration",
			input: usecase.CreateExpenseInput{
				Description: "compra insumos",
				Provider:    "Distribuidora Sur",
				Total:       domain.MustMoney("1300.00"),
				Date:        time.Date(2025, 12, 5, 14, 0, 0, 0, time.UTC),
				CategoryID:  "cat-1",
				OwnerID:     "user-1",
			},
		},
		{
			name: "non-positive total rejected",
			input: usecase.CreateExpenseInput{
				Description: "compra insumos",
				Total:       domain.MoneyZero,
			},
			expectedErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockExpenseRepository()
			uc := usecase.NewExpenseUseCase(repo, mocks.NewMockAllocationRepository(), mocks.NewMockIDGenerator())

			expense, err := uc.CreateExpense(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !expense.Paid.IsZero() || !expense.Balance.Equal(tt.input.Total) {
				t.Errorf("fresh expense paid=%s balance=%s", expense.Paid, expense.Balance)
			}
			if !expense.Date.Equal(domain.BusinessDay(tt.input.Date)) {
				t.Errorf("date %s not normalized to business day", expense.Date)
			}
		})
	}
}

func TestExpenseUseCase_GetExpenseWithAllocations(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewMockExpenseRepository()
	allocationRepo := mocks.NewMockAllocationRepository()
	uc := usecase.NewExpenseUseCase(expenseRepo, allocationRepo, mocks.NewMockIDGenerator())

	expense, err := uc.CreateExpense(ctx, usecase.CreateExpenseInput{
		Description: "compra insumos",
		Total:       domain.MustMoney("500.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := allocationRepo.Create(ctx, nil, &domain.Allocation{
		ID: "alloc-1", ExpenseID: expense.ID, Amount: domain.MustMoney("200.00"),
		Date: expense.Date, Method: domain.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetExpenseWithAllocations(ctx, expense.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Expense.ID != expense.ID || len(got.Allocations) != 1 {
		t.Errorf("got %d allocations for %s", len(got.Allocations), got.Expense.ID)
	}

	if _, err := uc.GetExpenseWithAllocations(ctx, "missing"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}
