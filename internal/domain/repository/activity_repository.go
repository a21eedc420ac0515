package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

// ActivityRepository reads the reward catalog. The catalog is seeded at
// migration time and exposes no write path.
type ActivityRepository interface {
	Find(ctx context.Context, id int) (*model.Activity, error)
	FindBySlug(ctx context.Context, s string) (*model.Activity, error)
	List(ctx context.Context) ([]model.Activity, error)
}

type pgActivityRepository struct {
	db *sql.DB
}

func NewPgActivityRepository(db *sql.DB) ActivityRepository {
	return &pgActivityRepository{db: db}
}

func (r *pgActivityRepository) Find(ctx context.Context, id int) (*model.Activity, error) {
	return r.findBy(ctx, `SELECT id, title, slug, category, reward, proof_type FROM activities WHERE id = $1`, id)
}

func (r *pgActivityRepository) FindBySlug(ctx context.Context, s string) (*model.Activity, error) {
	return r.findBy(ctx, `SELECT id, title, slug, category, reward, proof_type FROM activities WHERE slug = $1`, s)
}

func (r *pgActivityRepository) findBy(ctx context.Context, query string, arg interface{}) (*model.Activity, error) {
	a := &model.Activity{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Category, &a.Reward, &a.ProofType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgActivityRepository.findBy: %w", err)
	}
	return a, nil
}

func (r *pgActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, slug, category, reward, proof_type FROM activities ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("pgActivityRepository.List: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.Category, &a.Reward, &a.ProofType); err != nil {
			return nil, fmt.Errorf("pgActivityRepository.List scan: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
