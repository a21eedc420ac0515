package repository

import (
	"context"
	"database/sql"
	"fmt"

	"edu_rewards/internal/domain/model"
)

// TransactionRepository is append-only: no update or delete exists, so a
// ledger entry can never be mutated after creation.
type TransactionRepository interface {
	Append(ctx context.Context, tx *model.Transaction) error
	List(ctx context.Context, limit, offset int) ([]model.Transaction, error)
	ListByAccount(ctx context.Context, account string) ([]model.Transaction, error)
}

type pgTransactionRepository struct {
	db *sql.DB
}

func NewPgTransactionRepository(db *sql.DB) TransactionRepository {
	return &pgTransactionRepository{db: db}
}

func (r *pgTransactionRepository) Append(ctx context.Context, tx *model.Transaction) error {
	query := `INSERT INTO transactions (id, hash, type, from_account, to_account, amount, status, description, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.Hash, tx.Type, tx.From, tx.To, tx.Amount, tx.Status, tx.Description, tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("pgTransactionRepository.Append: %w", err)
	}
	return nil
}

func (r *pgTransactionRepository) List(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	query := `SELECT id, hash, type, from_account, to_account, amount, status, description, created_at
	          FROM transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *pgTransactionRepository) ListByAccount(ctx context.Context, account string) ([]model.Transaction, error) {
	query := `SELECT id, hash, type, from_account, to_account, amount, status, description, created_at
	          FROM transactions WHERE from_account = $1 OR to_account = $1
	          ORDER BY created_at DESC`
	return r.list(ctx, query, account)
}

func (r *pgTransactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgTransactionRepository.list: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Hash, &tx.Type, &tx.From, &tx.To, &tx.Amount, &tx.Status, &tx.Description, &tx.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("pgTransactionRepository.list scan: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
