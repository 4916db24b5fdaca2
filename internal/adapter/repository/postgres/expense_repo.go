package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgxTxOf(tx usecase.Transaction) pgx.Tx {
	return tx.(*Tx).PgxTx()
}

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const insertExpenseSQL = `
INSERT INTO gastos (id, descripcion, proveedor, total_cents, pagado_cents, saldo_cents, fecha, categoria_id, usuario_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const selectExpenseSQL = `
SELECT id, descripcion, proveedor, total_cents, pagado_cents, saldo_cents, fecha, categoria_id, usuario_id, created_at, updated_at
FROM gastos
WHERE id = $1`

// Create creates a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	_, err := r.pool.Exec(ctx, insertExpenseSQL,
		expense.ID,
		expense.Description,
		expense.Provider,
		expense.Total.Units(),
		expense.Paid.Units(),
		expense.Balance.Units(),
		expense.Date,
		expense.CategoryID,
		expense.OwnerID,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	return err
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return scanExpense(r.pool.QueryRow(ctx, selectExpenseSQL, id))
}

// GetByIDForUpdate retrieves an expense by ID with a FOR UPDATE lock,
// serializing concurrent allocations against the same expense.
func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	return scanExpense(pgxTxOf(tx).QueryRow(ctx, selectExpenseSQL+" FOR UPDATE", id))
}

// UpdateBalances updates the paid/balance pair of an expense.
func (r *ExpenseRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, paid, balance domain.Money, updatedAt time.Time) error {
	tag, err := pgxTxOf(tx).Exec(ctx,
		`UPDATE gastos SET pagado_cents = $2, saldo_cents = $3, updated_at = $4 WHERE id = $1`,
		id, paid.Units(), balance.Units(), updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// List lists expenses with pagination, newest first.
func (r *ExpenseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, descripcion, proveedor, total_cents, pagado_cents, saldo_cents, fecha, categoria_id, usuario_id, created_at, updated_at
		FROM gastos
		ORDER BY fecha DESC, id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e                               domain.Expense
		totalUnits, paidUnits, balUnits int64
	)
	err := row.Scan(
		&e.ID,
		&e.Description,
		&e.Provider,
		&totalUnits,
		&paidUnits,
		&balUnits,
		&e.Date,
		&e.CategoryID,
		&e.OwnerID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	e.Total = domain.NewMoneyFromUnits(totalUnits)
	e.Paid = domain.NewMoneyFromUnits(paidUnits)
	e.Balance = domain.NewMoneyFromUnits(balUnits)
	return &e, nil
}
