package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"

	"github.com/google/uuid"
)

// CertificateService issues and revokes non-fungible achievement records.
// Issuance always succeeds (no duplicate check); revocation is one-way and
// certificates are never deleted.
type CertificateService struct {
	certRepo repository.CertificateRepository
}

func NewCertificateService(certRepo repository.CertificateRepository) *CertificateService {
	return &CertificateService{certRepo: certRepo}
}

type IssueCertificateRequest struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *CertificateService) Issue(ctx context.Context, req IssueCertificateRequest) (*model.Certificate, error) {
	if req.StudentID == "" || req.Title == "" {
		return nil, common.ErrBadRequest
	}
	id := uuid.NewString()
	cert := &model.Certificate{
		ID:          id,
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Title:       req.Title,
		Description: req.Description,
		TokenID:     "EDU-" + strings.ToUpper(id[:8]),
		Category:    req.Category,
		Status:      model.CertActive,
		IssuedAt:    time.Now().UTC(),
	}
	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, common.Errorf("failed to issue certificate: %w", err)
	}
	return cert, nil
}

// Revoke flips active -> revoked. Unknown ids return ErrNotFound; an already
// revoked certificate returns ErrInvalidTransition, so a repeated revoke is a
// visible no-op rather than a crash.
func (s *CertificateService) Revoke(ctx context.Context, id string) error {
	if _, err := s.certRepo.Find(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.Errorf("failed to read certificate: %w", err)
	}
	ok, err := s.certRepo.SetStatus(ctx, id, model.CertActive, model.CertRevoked)
	if err != nil {
		return common.Errorf("failed to revoke certificate: %w", err)
	}
	if !ok {
		return common.ErrInvalidTransition
	}
	return nil
}

func (s *CertificateService) ListByStudent(ctx context.Context, studentID string) ([]model.Certificate, error) {
	return s.certRepo.ListByStudent(ctx, studentID)
}
