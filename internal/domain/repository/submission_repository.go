package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

type SubmissionRepository interface {
	// Upsert overwrites any existing record for the same (activity, student)
	// key; resubmission is last-write-wins.
	Upsert(ctx context.Context, sub *model.Submission) error
	Find(ctx context.Context, activityID int, studentID string) (*model.Submission, error)
	ListPending(ctx context.Context) ([]model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	// SetStatus transitions from -> to in one guarded statement and reports
	// whether a row actually changed.
	SetStatus(ctx context.Context, activityID int, studentID string, from, to model.SubmissionStatus, reviewedAt *time.Time) (bool, error)
	Delete(ctx context.Context, activityID int, studentID string) (bool, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `activity_id, student_id, activity_title, student_name, student_email,
	status, proof_type, proof_value, tokens, submitted_at, reviewed_at`

func (r *pgSubmissionRepository) Upsert(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (` + submissionColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (activity_id, student_id) DO UPDATE SET
	            activity_title = EXCLUDED.activity_title,
	            student_name   = EXCLUDED.student_name,
	            student_email  = EXCLUDED.student_email,
	            status         = EXCLUDED.status,
	            proof_type     = EXCLUDED.proof_type,
	            proof_value    = EXCLUDED.proof_value,
	            tokens         = EXCLUDED.tokens,
	            submitted_at   = EXCLUDED.submitted_at,
	            reviewed_at    = EXCLUDED.reviewed_at`
	_, err := r.db.ExecContext(ctx, query,
		sub.ActivityID, sub.StudentID, sub.ActivityTitle, sub.StudentName, sub.StudentEmail,
		sub.Status, sub.ProofType, sub.ProofValue, sub.Tokens, sub.SubmittedAt, sub.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) Find(ctx context.Context, activityID int, studentID string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE activity_id = $1 AND student_id = $2`
	sub := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, activityID, studentID).Scan(
		&sub.ActivityID, &sub.StudentID, &sub.ActivityTitle, &sub.StudentName, &sub.StudentEmail,
		&sub.Status, &sub.ProofType, &sub.ProofValue, &sub.Tokens, &sub.SubmittedAt, &sub.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.Find: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListPending(ctx context.Context) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE status = $1 ORDER BY submitted_at ASC`
	return r.list(ctx, query, model.StatusPending)
}

func (r *pgSubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE student_id = $1 ORDER BY submitted_at DESC`
	return r.list(ctx, query, studentID)
}

func (r *pgSubmissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.list: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(
			&sub.ActivityID, &sub.StudentID, &sub.ActivityTitle, &sub.StudentName, &sub.StudentEmail,
			&sub.Status, &sub.ProofType, &sub.ProofValue, &sub.Tokens, &sub.SubmittedAt, &sub.ReviewedAt,
		); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.list scan: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *pgSubmissionRepository) SetStatus(ctx context.Context, activityID int, studentID string, from, to model.SubmissionStatus, reviewedAt *time.Time) (bool, error) {
	query := `UPDATE submissions SET status = $1, reviewed_at = COALESCE($2, reviewed_at)
	          WHERE activity_id = $3 AND student_id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, to, reviewedAt, activityID, studentID, from)
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.SetStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.SetStatus rows: %w", err)
	}
	return n > 0, nil
}

func (r *pgSubmissionRepository) Delete(ctx context.Context, activityID int, studentID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM submissions WHERE activity_id = $1 AND student_id = $2`,
		activityID, studentID,
	)
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.Delete rows: %w", err)
	}
	return n > 0, nil
}
