package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
)

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Provider    string          `json:"provider,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
	Settled     bool            `json:"settled"`
	Date        time.Time       `json:"date"`
	CategoryID  string          `json:"category_id,omitempty"`
	OwnerID     string          `json:"owner_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Provider:    e.Provider,
		Total:       e.Total.Decimal(),
		Paid:        e.Paid.Decimal(),
		Balance:     e.Balance.Decimal(),
		Settled:     e.IsSettled(),
		Date:        e.Date,
		CategoryID:  e.CategoryID,
		OwnerID:     e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int64              `json:"total"`
}

// AllocationResponse represents a payment allocation in API responses.
type AllocationResponse struct {
	ID            string          `json:"id"`
	ExpenseID     string          `json:"expense_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AllocationFromDomain converts a domain allocation to a response.
func AllocationFromDomain(a *domain.Allocation) *AllocationResponse {
	return &AllocationResponse{
		ID:            a.ID,
		ExpenseID:     a.ExpenseID,
		Amount:        a.Amount.Decimal(),
		Date:          a.Date,
		Method:        a.Method.String(),
		BankAccountID: a.BankAccountID,
		CreatedAt:     a.CreatedAt,
	}
}

// AllocationsFromDomain converts domain allocations to responses.
func AllocationsFromDomain(allocations []*domain.Allocation) []*AllocationResponse {
	result := make([]*AllocationResponse, len(allocations))
	for i, a := range allocations {
		result[i] = AllocationFromDomain(a)
	}
	return result
}

// ExpenseWithAllocationsResponse pairs an expense with its payment history.
type ExpenseWithAllocationsResponse struct {
	Expense     *ExpenseResponse      `json:"expense"`
	Allocations []*AllocationResponse `json:"allocations"`
}

// IncomeResponse represents an income receipt in API responses.
type IncomeResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Concept       string          `json:"concept"`
	Method        string          `json:"method"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IncomeFromDomain converts a domain income receipt to a response.
func IncomeFromDomain(i *domain.Income) *IncomeResponse {
	return &IncomeResponse{
		ID:            i.ID,
		Amount:        i.Amount.Decimal(),
		Date:          i.Date,
		Concept:       i.Concept,
		Method:        i.Method.String(),
		BankAccountID: i.BankAccountID,
		CreatedAt:     i.CreatedAt,
	}
}

// IncomesFromDomain converts domain income receipts to responses.
func IncomesFromDomain(incomes []*domain.Income) []*IncomeResponse {
	result := make([]*IncomeResponse, len(incomes))
	for i, in := range incomes {
		result[i] = IncomeFromDomain(in)
	}
	return result
}

// MovementResponse represents one entry of the unified movement feed.
type MovementResponse struct {
	Kind          string          `json:"kind"`
	RecordID      string          `json:"record_id"`
	ExpenseID     string          `json:"expense_id,omitempty"`
	Concept       string          `json:"concept,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
}

// MovementTotalsResponse carries the cash/bank partitioned totals.
type MovementTotalsResponse struct {
	IncomeCash  decimal.Decimal `json:"income_cash"`
	IncomeBank  decimal.Decimal `json:"income_bank"`
	ExpenseCash decimal.Decimal `json:"expense_cash"`
	ExpenseBank decimal.Decimal `json:"expense_bank"`
}

// MovementReportResponse is the merged feed plus its totals.
type MovementReportResponse struct {
	Movements []MovementResponse     `json:"movements"`
	Totals    MovementTotalsResponse `json:"totals"`
	Net       decimal.Decimal        `json:"net"`
}

// MovementReportFromUseCase converts a merged report to a response.
func MovementReportFromUseCase(r *usecase.MovementReport) *MovementReportResponse {
	movements := make([]MovementResponse, len(r.Movements))
	for i, m := range r.Movements {
		movements[i] = MovementResponse{
			Kind:          string(m.Kind),
			RecordID:      m.RecordID,
			ExpenseID:     m.ExpenseID,
			Concept:       m.Concept,
			Amount:        m.Amount.Decimal(),
			Date:          m.Date,
			Method:        m.Method.String(),
			BankAccountID: m.BankAccountID,
		}
	}

	return &MovementReportResponse{
		Movements: movements,
		Totals:    movementTotalsFromDomain(r.Totals),
		Net:       r.Net.Decimal(),
	}
}

func movementTotalsFromDomain(t domain.MovementTotals) MovementTotalsResponse {
	return MovementTotalsResponse{
		IncomeCash:  t.IncomeCash.Decimal(),
		IncomeBank:  t.IncomeBank.Decimal(),
		ExpenseCash: t.ExpenseCash.Decimal(),
		ExpenseBank: t.ExpenseBank.Decimal(),
	}
}

// ClosingResponse represents a daily closing snapshot in API responses.
type ClosingResponse struct {
	Date           time.Time              `json:"date"`
	Totals         MovementTotalsResponse `json:"totals"`
	ClosingBalance decimal.Decimal        `json:"closing_balance"`
	Status         string                 `json:"status"`
	ClosedBy       *string                `json:"closed_by,omitempty"`
	ClosedAt       *time.Time             `json:"closed_at,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ClosingFromDomain converts a domain closing to a response.
func ClosingFromDomain(c *domain.Closing) *ClosingResponse {
	status := "open"
	if c.IsClosed() {
		status = "closed"
	}

	return &ClosingResponse{
		Date:           c.Date,
		Totals:         movementTotalsFromDomain(c.Totals),
		ClosingBalance: c.ClosingBalance.Decimal(),
		Status:         status,
		ClosedBy:       c.ClosedBy,
		ClosedAt:       c.ClosedAt,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Bank      string    `json:"bank"`
	CreatedAt time.Time `json:"created_at"`
}

// BankAccountsFromDomain converts domain bank accounts to responses.
func BankAccountsFromDomain(accounts []*domain.BankAccount) []*BankAccountResponse {
	result := make([]*BankAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = &BankAccountResponse{
			ID:        a.ID,
			Name:      a.Name,
			Number:    a.Number,
			Bank:      a.Bank,
			CreatedAt: a.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
