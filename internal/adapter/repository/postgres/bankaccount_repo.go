package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gocaja/internal/domain"
)

// BankAccountRepository implements usecase.BankAccountRepository.
type BankAccountRepository struct {
	pool *pgxpool.Pool
}

// NewBankAccountRepository creates a new BankAccountRepository.
func NewBankAccountRepository(pool *pgxpool.Pool) *BankAccountRepository {
	return &BankAccountRepository{pool: pool}
}

// Exists reports whether a bank account with the given ID exists.
func (r *BankAccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cuentas_bancarias WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// List returns all bank accounts.
func (r *BankAccountRepository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, numero, banco, created_at FROM cuentas_bancarias ORDER BY nombre`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		var a domain.BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Number, &a.Bank, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}
