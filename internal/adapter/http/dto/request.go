package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
)

// CreateExpenseRequest represents a request to register an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Provider    string          `json:"provider,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Date        *time.Time      `json:"date,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	OwnerID     string          `json:"owner_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() (usecase.CreateExpenseInput, error) {
	total, err := domain.NewMoneyFromDecimal(r.Total)
	if err != nil {
		return usecase.CreateExpenseInput{}, err
	}

	input := usecase.CreateExpenseInput{
		Description: r.Description,
		Provider:    r.Provider,
		Total:       total,
		CategoryID:  r.CategoryID,
		OwnerID:     r.OwnerID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input, nil
}

// AllocatePaymentRequest represents a request to pay part of an expense.
type AllocatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
	Date          *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input for the given expense.
func (r *AllocatePaymentRequest) ToUseCaseInput(expenseID string) (usecase.AllocateInput, error) {
	amount, err := domain.NewMoneyFromDecimal(r.Amount)
	if err != nil {
		return usecase.AllocateInput{}, err
	}

	method, err := domain.ParsePaymentMethod(r.Method)
	if err != nil {
		return usecase.AllocateInput{}, err
	}

	input := usecase.AllocateInput{
		ExpenseID:     expenseID,
		Amount:        amount,
		Method:        method,
		BankAccountID: r.BankAccountID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input, nil
}

// RecordIncomeRequest represents a request to record an income receipt.
type RecordIncomeRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Concept       string          `json:"concept"`
	Date          *time.Time      `json:"date,omitempty"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordIncomeRequest) ToUseCaseInput() (usecase.RecordIncomeInput, error) {
	amount, err := domain.NewMoneyFromDecimal(r.Amount)
	if err != nil {
		return usecase.RecordIncomeInput{}, err
	}

	method, err := domain.ParsePaymentMethod(r.Method)
	if err != nil {
		return usecase.RecordIncomeInput{}, err
	}

	input := usecase.RecordIncomeInput{
		Amount:        amount,
		Method:        method,
		Concept:       r.Concept,
		BankAccountID: r.BankAccountID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input, nil
}

// CloseDayRequest represents a request to seal a day's closing.
type CloseDayRequest struct {
	ClosedBy string `json:"closed_by"`
}
