package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gocaja/internal/domain"
)

// IncomeRepository implements usecase.IncomeRepository.
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

const selectIncomeCols = `id, monto_cents, fecha, concepto, metodo_pago, cuenta_bancaria_id, created_at`

// Create inserts an income receipt.
func (r *IncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ingresos (id, monto_cents, fecha, concepto, metodo_pago, cuenta_bancaria_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		income.ID,
		income.Amount.Units(),
		income.Date,
		income.Concept,
		int16(income.Method),
		income.BankAccountID,
		income.CreatedAt,
	)
	return err
}

// GetByID retrieves an income receipt by ID.
func (r *IncomeRepository) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectIncomeCols+` FROM ingresos WHERE id = $1`, id)
	income, err := scanIncome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	return income, nil
}

// ListByDateRange returns income receipts dated within [from, to]. A non-nil
// bankAccountID restricts the result to that bank account.
func (r *IncomeRepository) ListByDateRange(ctx context.Context, from, to time.Time, bankAccountID *string) ([]*domain.Income, error) {
	query := `SELECT ` + selectIncomeCols + ` FROM ingresos WHERE fecha >= $1 AND fecha <= $2`
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
	defer rows.Close()

	var incomes []*domain.Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var (
		in     domain.Income
		units  int64
		method int16
	)
	err := row.Scan(&in.ID, &units, &in.Date, &in.Concept, &method, &in.BankAccountID, &in.CreatedAt)
	if err != nil {
		return nil, err
	}
	in.Amount = domain.NewMoneyFromUnits(units)
	in.Method = domain.PaymentMethod(method)
	return &in, nil
}
