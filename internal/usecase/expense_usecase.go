package usecase

import (
	"context"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// ExpenseUseCase handles expense registration and queries. Paid and balance
// are never touched here; only the allocator mutates them.
type ExpenseUseCase struct {
	expenseRepo    ExpenseRepository
	allocationRepo AllocationRepository
	idGen          IDGenerator
	now            func() time.Time
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	expenseRepo ExpenseRepository,
	allocationRepo AllocationRepository,
	idGen IDGenerator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo:    expenseRepo,
		allocationRepo: allocationRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (uc *ExpenseUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// CreateExpenseInput represents input for registering an expense.
type CreateExpenseInput struct {
	Description string
	Provider    string
	Total       domain.Money
	Date        time.Time
	CategoryID  string
	OwnerID     string
}

// CreateExpense registers a new expense with nothing paid yet.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Total); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	now := uc.now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		Description: input.Description,
		Provider:    input.Provider,
		Total:       input.Total,
		Paid:        domain.MoneyZero,
		Balance:     input.Total,
		Date:        domain.BusinessDay(date),
		CategoryID:  input.CategoryID,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ExpenseWithAllocations pairs an expense with its allocation history.
type ExpenseWithAllocations struct {
	Expense     *domain.Expense
	Allocations []*domain.Allocation
}

// GetExpenseWithAllocations retrieves an expense and its allocations.
func (uc *ExpenseUseCase) GetExpenseWithAllocations(ctx context.Context, id string) (*ExpenseWithAllocations, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allocations, err := uc.allocationRepo.ListByExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithAllocations{
		Expense:     expense,
		Allocations: allocations,
	}, nil
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	Limit  int
	Offset int
}

// ListExpenses lists expenses with pagination.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.expenseRepo.List(ctx, limit, offset)
}
