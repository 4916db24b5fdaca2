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

const pgErrUniqueViolation = "23505"

// ClosingRepository implements usecase.ClosingRepository. Rows are keyed by
// business day; two writers racing to create the same day surface as a
// unique violation, reported as domain.ErrConcurrencyConflict.
type ClosingRepository struct {
	pool *pgxpool.Pool
}

// NewClosingRepository creates a new ClosingRepository.
func NewClosingRepository(pool *pgxpool.Pool) *ClosingRepository {
	return &ClosingRepository{pool: pool}
}

const selectClosingCols = `fecha, ingresos_efectivo_cents, ingresos_banco_cents, egresos_efectivo_cents, egresos_banco_cents, saldo_cierre_cents, cerrado_por, cerrado_at, notas, created_at, updated_at`

// GetByDate retrieves the closing snapshot for a business day.
func (r *ClosingRepository) GetByDate(ctx context.Context, date time.Time) (*domain.Closing, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectClosingCols+` FROM arqueos WHERE fecha = $1`, date)
	return scanClosing(row)
}

// GetByDateForUpdate retrieves the snapshot with a FOR UPDATE lock so a
// close in flight blocks rival closes of the same day.
func (r *ClosingRepository) GetByDateForUpdate(ctx context.Context, tx usecase.Transaction, date time.Time) (*domain.Closing, error) {
	row := pgxTxOf(tx).QueryRow(ctx, `SELECT `+selectClosingCols+` FROM arqueos WHERE fecha = $1 FOR UPDATE`, date)
	return scanClosing(row)
}

// GetPrevious returns the most recent sealed closing strictly before date.
func (r *ClosingRepository) GetPrevious(ctx context.Context, date time.Time) (*domain.Closing, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+selectClosingCols+` FROM arqueos
		WHERE fecha < $1 AND cerrado_at IS NOT NULL
		ORDER BY fecha DESC
		LIMIT 1`,
		date,
	)
	return scanClosing(row)
}

// Create inserts a new open snapshot.
func (r *ClosingRepository) Create(ctx context.Context, closing *domain.Closing) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO arqueos (`+selectClosingCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		closingArgs(closing)...,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrConcurrencyConflict
	}
	return err
}

// Upsert writes the snapshot inside tx, inserting or replacing the row for
// its date. A sealed row is never replaced: two closers racing on a day with
// no row yet both skip the FOR UPDATE lock, and without the guard the loser's
// conflict branch would wait out the winner's commit and overwrite the seal.
// The loser gets domain.ErrAlreadyClosed instead.
func (r *ClosingRepository) Upsert(ctx context.Context, tx usecase.Transaction, closing *domain.Closing) error {
	tag, err := pgxTxOf(tx).Exec(ctx,
		`INSERT INTO arqueos (`+selectClosingCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (fecha) DO UPDATE SET
			ingresos_efectivo_cents = EXCLUDED.ingresos_efectivo_cents,
			ingresos_banco_cents = EXCLUDED.ingresos_banco_cents,
			egresos_efectivo_cents = EXCLUDED.egresos_efectivo_cents,
			egresos_banco_cents = EXCLUDED.egresos_banco_cents,
			saldo_cierre_cents = EXCLUDED.saldo_cierre_cents,
			cerrado_por = EXCLUDED.cerrado_por,
			cerrado_at = EXCLUDED.cerrado_at,
			notas = EXCLUDED.notas,
			updated_at = EXCLUDED.updated_at
		WHERE arqueos.cerrado_at IS NULL`,
		closingArgs(closing)...,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyClosed
	}
	return nil
}

func closingArgs(c *domain.Closing) []any {
	return []any{
		c.Date,
		c.Totals.IncomeCash.Units(),
		c.Totals.IncomeBank.Units(),
		c.Totals.ExpenseCash.Units(),
		c.Totals.ExpenseBank.Units(),
		c.ClosingBalance.Units(),
		c.ClosedBy,
		c.ClosedAt,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	}
}

func scanClosing(row pgx.Row) (*domain.Closing, error) {
	var (
		c                                              domain.Closing
		incomeCash, incomeBank, expCash, expBank, bal int64
	)
	err := row.Scan(
		&c.Date,
		&incomeCash,
		&incomeBank,
		&expCash,
		&expBank,
		&bal,
		&c.ClosedBy,
		&c.ClosedAt,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClosingNotFound
		}
		return nil, err
	}

	c.Totals = domain.MovementTotals{
		IncomeCash:  domain.NewMoneyFromUnits(incomeCash),
		IncomeBank:  domain.NewMoneyFromUnits(incomeBank),
		ExpenseCash: domain.NewMoneyFromUnits(expCash),
		ExpenseBank: domain.NewMoneyFromUnits(expBank),
	}
	c.ClosingBalance = domain.NewMoneyFromUnits(bal)
	return &c, nil
}
