package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu           sync.Mutex
	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc           func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error)
	UpdateBalancesFunc   func(ctx context.Context, tx usecase.Transaction, id string, paid, balance domain.Money, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{expenses: make(map[string]*domain.Expense)}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *expense
	m.expenses[expense.ID] = &cp
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockExpenseRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, paid, balance domain.Money, updatedAt time.Time) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, id, paid, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	e.Paid = paid
	e.Balance = balance
	e.UpdatedAt = updatedAt
	return nil
}

func (m *MockExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// MockAllocationRepository is a mock implementation of AllocationRepository.
type MockAllocationRepository struct {
	mu          sync.RWMutex
	allocations []*domain.Allocation

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error
	ListByExpenseFunc   func(ctx context.Context, expenseID string) ([]*domain.Allocation, error)
	ListByDateRangeFunc func(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Allocation, error)
}

func NewMockAllocationRepository() *MockAllocationRepository {
	return &MockAllocationRepository{}
}

func (m *MockAllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, allocation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *allocation
	m.allocations = append(m.allocations, &cp)
	return nil
}

func (m *MockAllocationRepository) ListByExpense(ctx context.Context, expenseID string) ([]*domain.Allocation, error) {
	if m.ListByExpenseFunc != nil {
		return m.ListByExpenseFunc(ctx, expenseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Allocation
	for _, a := range m.allocations {
		if a.ExpenseID == expenseID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockAllocationRepository) ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Allocation, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, from, to, bankAccountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Allocation
	for _, a := range m.allocations {
		if !inRange(a.Date, from, to) || !bankMatches(a.BankAccountID, bankAccountID) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// MockIncomeRepository is a mock implementation of IncomeRepository.
type MockIncomeRepository struct {
	mu      sync.RWMutex
	incomes []*domain.Income

	CreateFunc          func(ctx context.Context, income *domain.Income) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Income, error)
	ListByDateRangeFunc func(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Income, error)
}

func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{}
}

func (m *MockIncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, income)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *income
	m.incomes = append(m.incomes, &cp)
	return nil
}

func (m *MockIncomeRepository) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, i := range m.incomes {
		if i.ID == id {
			cp := *i
			return &cp, nil
		}
	}
	return nil, domain.ErrIncomeNotFound
}

func (m *MockIncomeRepository) ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Income, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, from, to, bankAccountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Income
	for _, i := range m.incomes {
		if !inRange(i.Date, from, to) || !bankMatches(i.BankAccountID, bankAccountID) {
			continue
		}
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

// MockClosingRepository is a mock implementation of ClosingRepository.
type MockClosingRepository struct {
	mu       sync.RWMutex
	closings map[string]*domain.Closing

	GetByDateFunc          func(ctx context.Context, date time.Time) (*domain.Closing, error)
	GetByDateForUpdateFunc func(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Closing, error)
	GetPreviousFunc        func(ctx context.Context, date time.Time) (*domain.Closing, error)
	CreateFunc             func(ctx context.Context, closing *domain.Closing) error
	UpsertFunc             func(ctx context.Context, tx usecase.Transaction, closing *domain.Closing) error
}

func NewMockClosingRepository() *MockClosingRepository {
	return &MockClosingRepository{closings: make(map[string]*domain.Closing)}
}

func closingKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func (m *MockClosingRepository) GetByDate(ctx context.Context, date time.Time) (*domain.Closing, error) {
	if m.GetByDateFunc != nil {
		return m.GetByDateFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.closings[closingKey(date)]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrClosingNotFound
}

func (m *MockClosingRepository) GetByDateForUpdate(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Closing, error) {
	if m.GetByDateForUpdateFunc != nil {
		return m.GetByDateForUpdateFunc(ctx, tx, date)
	}
	return m.GetByDate(ctx, date)
}

func (m *MockClosingRepository) GetPrevious(ctx context.Context, date time.Time) (*domain.Closing, error) {
	if m.GetPreviousFunc != nil {
		return m.GetPreviousFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *domain.Closing
	for _, c := range m.closings {
		if !c.Date.Before(date) || !c.IsClosed() {
			continue
		}
		if best == nil || c.Date.After(best.Date) {
			best = c
		}
	}
	if best == nil {
		return nil, domain.ErrClosingNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *MockClosingRepository) Create(ctx context.Context, closing *domain.Closing) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, closing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := closingKey(closing.Date)
	if _, ok := m.closings[key]; ok {
		return domain.ErrConcurrencyConflict
	}
	cp := *closing
	m.closings[key] = &cp
	return nil
}

func (m *MockClosingRepository) Upsert(ctx context.Context, tx usecase.Transaction, closing *domain.Closing) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, closing)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := closingKey(closing.Date)
	if existing, ok := m.closings[key]; ok && existing.IsClosed() {
		return domain.ErrAlreadyClosed
	}
	cp := *closing
	m.closings[key] = &cp
	return nil
}

// MockBankAccountRepository is a mock implementation of BankAccountRepository.
type MockBankAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BankAccount

	ExistsFunc func(ctx context.Context, id string) (bool, error)
	ListFunc   func(ctx context.Context) ([]*domain.BankAccount, error)
}

func NewMockBankAccountRepository() *MockBankAccountRepository {
	return &MockBankAccountRepository{accounts: make(map[string]*domain.BankAccount)}
}

func (m *MockBankAccountRepository) Add(account *domain.BankAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockBankAccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[id]
	return ok, nil
}

func (m *MockBankAccountRepository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.BankAccount, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}

func bankMatches(recordBank, filterBank *string) bool {
	if filterBank == nil {
		return true
	}
	return recordBank != nil && *recordBank == *filterBank
}
