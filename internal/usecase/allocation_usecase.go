package usecase

import (
	"context"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// AllocationUseCase applies payment-method-tagged disbursements against
// expenses. Allocations against the same expense are serialized through a
// row lock on the expense for the duration of the read-modify-write.
type AllocationUseCase struct {
	txManager      TransactionManager
	expenseRepo    ExpenseRepository
	allocationRepo AllocationRepository
	idGen          IDGenerator
	now            func() time.Time
}

// NewAllocationUseCase creates a new AllocationUseCase.
func NewAllocationUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	allocationRepo AllocationRepository,
	idGen IDGenerator,
) *AllocationUseCase {
	return &AllocationUseCase{
		txManager:      txManager,
		expenseRepo:    expenseRepo,
		allocationRepo: allocationRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (uc *AllocationUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// AllocateInput represents input for allocating a payment.
type AllocateInput struct {
	ExpenseID     string
	Amount        domain.Money
	Method        domain.PaymentMethod
	BankAccountID *string
	Date          time.Time
}

// Allocate applies a disbursement against an expense. The expense balance
// is re-read under an exclusive lock; an amount above the remaining balance
// is rejected outright, never clamped.
func (uc *AllocationUseCase) Allocate(ctx context.Context, input AllocateInput) (*domain.Allocation, error) {
	// Validate before touching the store.
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Method.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	now := uc.now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}
	date = domain.BusinessDay(date)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	expense, err := uc.expenseRepo.GetByIDForUpdate(ctx, tx, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if err := expense.ValidateAllocation(input.Amount); err != nil {
		return nil, err
	}

	paid, balance, err := expense.ApplyAllocation(input.Amount)
	if err != nil {
		return nil, err
	}

	allocation := &domain.Allocation{
		ID:            uc.idGen.Generate(),
		ExpenseID:     expense.ID,
		Amount:        input.Amount,
		Date:          date,
		Method:        input.Method,
		BankAccountID: input.BankAccountID,
		CreatedAt:     now,
	}

	if err := allocation.Validate(); err != nil {
		return nil, err
	}

	if err := uc.allocationRepo.Create(ctx, tx, allocation); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.UpdateBalances(ctx, tx, expense.ID, paid, balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return allocation, nil
}

// ListByExpense lists the allocations recorded against an expense.
func (uc *AllocationUseCase) ListByExpense(ctx context.Context, expenseID string) ([]*domain.Allocation, error) {
	if _, err := uc.expenseRepo.GetByID(ctx, expenseID); err != nil {
		return nil, err
	}
	return uc.allocationRepo.ListByExpense(ctx, expenseID)
}
