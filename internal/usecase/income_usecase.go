package usecase

import (
	"context"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// IncomeUseCase records income receipts. Recording is pure creation: no
// aggregate to update, and receipts are never retroactively edited. A wrong
// entry is corrected by a reversal receipt, which keeps closed periods
// auditable.
type IncomeUseCase struct {
	incomeRepo IncomeRepository
	idGen      IDGenerator
	now        func() time.Time
}

// NewIncomeUseCase creates a new IncomeUseCase.
func NewIncomeUseCase(incomeRepo IncomeRepository, idGen IDGenerator) *IncomeUseCase {
	return &IncomeUseCase{
		incomeRepo: incomeRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (uc *IncomeUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// RecordIncomeInput represents input for recording an income receipt.
type RecordIncomeInput struct {
	Amount        domain.Money
	Method        domain.PaymentMethod
	Concept       string
	Date          time.Time
	BankAccountID *string
}

// Record persists a new income receipt.
func (uc *IncomeUseCase) Record(ctx context.Context, input RecordIncomeInput) (*domain.Income, error) {
	if err := domain.ValidateDescription(input.Concept); err != nil {
		return nil, err
	}

	now := uc.now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}
	date = domain.BusinessDay(date)

	income := &domain.Income{
		ID:            uc.idGen.Generate(),
		Amount:        input.Amount,
		Date:          date,
		Concept:       input.Concept,
		Method:        input.Method,
		BankAccountID: input.BankAccountID,
		CreatedAt:     now,
	}

	if err := income.Validate(now); err != nil {
		return nil, err
	}

	if err := uc.incomeRepo.Create(ctx, income); err != nil {
		return nil, err
	}

	return income, nil
}

// GetIncome retrieves a receipt by ID.
func (uc *IncomeUseCase) GetIncome(ctx context.Context, id string) (*domain.Income, error) {
	return uc.incomeRepo.GetByID(ctx, id)
}

// ListIncomesInput represents input for listing receipts.
type ListIncomesInput struct {
	DateFrom      time.Time
	DateTo        time.Time
	BankAccountID *string
}

// ListIncomes lists receipts in a date window.
func (uc *IncomeUseCase) ListIncomes(ctx context.Context, input ListIncomesInput) ([]*domain.Income, error) {
	from := domain.BusinessDay(input.DateFrom)
	to := domain.BusinessDay(input.DateTo)

	if err := domain.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	return uc.incomeRepo.ListByDateRange(ctx, from, to, input.BankAccountID)
}
