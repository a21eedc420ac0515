package model

import "time"

type CertificateStatus string

const (
	CertActive  CertificateStatus = "active"
	CertRevoked CertificateStatus = "revoked"
)

// Certificate is a non-fungible achievement record. Transitions
// active -> revoked only; never reversed, never deleted.
type Certificate struct {
	ID          string            `json:"id"`
	StudentID   string            `json:"student_id"`
	StudentName string            `json:"student_name"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	TokenID     string            `json:"token_id"` // generated display id
	Category    string            `json:"category"`
	Status      CertificateStatus `json:"status"`
	IssuedAt    time.Time         `json:"issued_at"`
}
