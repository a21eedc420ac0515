package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

type CertificateRepository interface {
	Create(ctx context.Context, c *model.Certificate) error
	Find(ctx context.Context, id string) (*model.Certificate, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Certificate, error)
	// SetStatus transitions from -> to and reports whether a row changed.
	// Certificates are never deleted.
	SetStatus(ctx context.Context, id string, from, to model.CertificateStatus) (bool, error)
}

type pgCertificateRepository struct {
	db *sql.DB
}

func NewPgCertificateRepository(db *sql.DB) CertificateRepository {
	return &pgCertificateRepository{db: db}
}

const certificateColumns = `id, student_id, student_name, title, description, token_id, category, status, issued_at`

func (r *pgCertificateRepository) Create(ctx context.Context, c *model.Certificate) error {
	query := `INSERT INTO certificates (` + certificateColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.StudentID, c.StudentName, c.Title, c.Description, c.TokenID, c.Category, c.Status, c.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("pgCertificateRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCertificateRepository) Find(ctx context.Context, id string) (*model.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	c := &model.Certificate{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.StudentID, &c.StudentName, &c.Title, &c.Description, &c.TokenID, &c.Category, &c.Status, &c.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCertificateRepository.Find: %w", err)
	}
	return c, nil
}

func (r *pgCertificateRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates
	          WHERE student_id = $1 ORDER BY issued_at DESC`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("pgCertificateRepository.ListByStudent: %w", err)
	}
	defer rows.Close()

	var certs []model.Certificate
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.StudentName, &c.Title, &c.Description, &c.TokenID, &c.Category, &c.Status, &c.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("pgCertificateRepository.ListByStudent scan: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func (r *pgCertificateRepository) SetStatus(ctx context.Context, id string, from, to model.CertificateStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE certificates SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("pgCertificateRepository.SetStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgCertificateRepository.SetStatus rows: %w", err)
	}
	return n > 0, nil
}
