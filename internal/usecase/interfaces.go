package usecase

import (
	"context"
	"time"

	"github.com/iho/gocaja/internal/domain"
)

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Expense, error)
	UpdateBalances(ctx context.Context, tx Transaction, id string, paid, balance domain.Money, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Expense, error)
}

// AllocationRepository defines data access for payment allocations.
type AllocationRepository interface {
	Create(ctx context.Context, tx Transaction, allocation *domain.Allocation) error
	ListByExpense(ctx context.Context, expenseID string) ([]*domain.Allocation, error)
	// ListByDateRange returns allocations dated within [from, to]. A non-nil
	// bankAccountID restricts the result to that bank account.
	ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Allocation, error)
}

// IncomeRepository defines data access for income receipts.
type IncomeRepository interface {
	Create(ctx context.Context, income *domain.Income) error
	GetByID(ctx context.Context, id string) (*domain.Income, error)
	ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Income, error)
}

// ClosingRepository defines data access for daily closing snapshots.
type ClosingRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.Closing, error)
	GetByDateForUpdate(ctx context.Context, tx Transaction, date time.Time) (*domain.Closing, error)
	// GetPrevious returns the most recent sealed closing strictly before date.
	GetPrevious(ctx context.Context, date time.Time) (*domain.Closing, error)
	Create(ctx context.Context, closing *domain.Closing) error
	// Upsert writes the snapshot inside tx, inserting or replacing the row
	// for its date. A sealed row is never replaced; attempting to fails
	// with domain.ErrAlreadyClosed.
	Upsert(ctx context.Context, tx Transaction, closing *domain.Closing) error
}

// BankAccountRepository provides existence lookups for bank accounts. The
// core never validates bank accounts itself; callers do it at the edge.
type BankAccountRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.BankAccount, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
