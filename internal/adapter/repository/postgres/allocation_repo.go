package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gocaja/internal/domain"
	"github.com/iho/gocaja/internal/usecase"
)

// AllocationRepository implements usecase.AllocationRepository.
type AllocationRepository struct {
	pool *pgxpool.Pool
}

// NewAllocationRepository creates a new AllocationRepository.
func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

const selectAllocationCols = `id, gasto_id, monto_cents, fecha, metodo_pago, cuenta_bancaria_id, created_at`

// Create inserts an allocation. It runs inside tx when one is given so the
// row lands atomically with the expense balance update.
func (r *AllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error {
	var db dbtx = r.pool
	if tx != nil {
		db = pgxTxOf(tx)
	}
	_, err := db.Exec(ctx,
		`INSERT INTO pagos_gasto (id, gasto_id, monto_cents, fecha, metodo_pago, cuenta_bancaria_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		allocation.ID,
		allocation.ExpenseID,
		allocation.Amount.Units(),
		allocation.Date,
		int16(allocation.Method),
		allocation.BankAccountID,
		allocation.CreatedAt,
	)
	return err
}

// ListByExpense returns all allocations for an expense, oldest first.
func (r *AllocationRepository) ListByExpense(ctx context.Context, expenseID string) ([]*domain.Allocation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectAllocationCols+` FROM pagos_gasto WHERE gasto_id = $1 ORDER BY fecha, id`,
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	return collectAllocations(rows)
}

// ListByDateRange returns allocations dated within [from, to]. A non-nil
// bankAccountID restricts the result to that bank account.
func (r *AllocationRepository) ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Allocation, error) {
	query := `SELECT ` + selectAllocationCols + ` FROM pagos_gasto WHERE fecha >= $1 AND fecha <= $2`
	args := []any{from, to}
	if bankAccountID != nil {
		query += ` AND cuenta_bancaria_id = $3`
		args = append(args, *bankAccountID)
	}
	query += ` ORDER BY fecha, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAllocations(rows)
}

func collectAllocations(rows pgx.Rows) ([]*domain.Allocation, error) {
	defer rows.Close()

	var allocations []*domain.Allocation
	for rows.Next() {
		var (
			a      domain.Allocation
			units  int64
			method int16
		)
		if err := rows.Scan(&a.ID, &a.ExpenseID, &units, &a.Date, &method, &a.BankAccountID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Amount = domain.NewMoneyFromUnits(units)
		a.Method = domain.PaymentMethod(method)
		allocations = append(allocations, &a)
	}
	return allocations, rows.Err()
}
