package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.UserProfile) error
	Find(ctx context.Context, id string) (*model.UserProfile, error)
	// Credit raises tokens and total_earned together in one statement.
	// Returns ErrNotFound when no profile exists; no implicit creation.
	Credit(ctx context.Context, id string, amount int) (*model.UserProfile, error)
	// Debit lowers tokens only when the balance covers the amount, in a single
	// guarded statement. Returns ErrInsufficientBalance with the balance
	// untouched otherwise.
	Debit(ctx context.Context, id string, amount int) (*model.UserProfile, error)
}

type pgProfileRepository struct {
	db *sql.DB
}

func NewPgProfileRepository(db *sql.DB) ProfileRepository {
	return &pgProfileRepository{db: db}
}

const profileColumns = `id, name, email, wallet_address, tokens, total_earned, bio, institution, created_at`

func (r *pgProfileRepository) Create(ctx context.Context, p *model.UserProfile) error {
	query := `INSERT INTO profiles (` + profileColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.WalletAddress, p.Tokens, p.TotalEarned, p.Bio, p.Institution, p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("profile already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProfileRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProfileRepository) Find(ctx context.Context, id string) (*model.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p := &model.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.WalletAddress, &p.Tokens, &p.TotalEarned, &p.Bio, &p.Institution, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProfileRepository.Find: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepository) Credit(ctx context.Context, id string, amount int) (*model.UserProfile, error) {
	query := `UPDATE profiles SET tokens = tokens + $1, total_earned = total_earned + $1
	          WHERE id = $2
	          RETURNING ` + profileColumns
	p := &model.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, amount, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.WalletAddress, &p.Tokens, &p.TotalEarned, &p.Bio, &p.Institution, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProfileRepository.Credit: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepository) Debit(ctx context.Context, id string, amount int) (*model.UserProfile, error) {
	query := `UPDATE profiles SET tokens = tokens - $1
	          WHERE id = $2 AND tokens >= $1
	          RETURNING ` + profileColumns
	p := &model.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, amount, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.WalletAddress, &p.Tokens, &p.TotalEarned, &p.Bio, &p.Institution, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Distinguish a missing profile from an uncovered balance.
			if _, findErr := r.Find(ctx, id); errors.Is(findErr, common.ErrNotFound) {
				return nil, common.ErrNotFound
			}
			return nil, common.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("pgProfileRepository.Debit: %w", err)
	}
	return p, nil
}
