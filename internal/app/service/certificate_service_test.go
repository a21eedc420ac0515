package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

func TestIssueCertificate(t *testing.T) {
	env := newTestEnv()

	cert, err := env.certificates.Issue(context.Background(), IssueCertificateRequest{
		StudentID:   "alice",
		StudentName: "Alice",
		Title:       "Hackathon Winner",
		Description: "First place, spring hackathon",
		Category:    "Technical",
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if cert.Status != model.CertActive {
		t.Fatalf("status = %q, want active", cert.Status)
	}
	if !strings.HasPrefix(cert.TokenID, "EDU-") {
		t.Fatalf("token id = %q, want EDU- prefix", cert.TokenID)
	}
}

func TestIssueAllowsDuplicates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := IssueCertificateRequest{StudentID: "alice", StudentName: "Alice", Title: "Attendance Award", Category: "Academic"}
	if _, err := env.certificates.Issue(ctx, req); err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	if _, err := env.certificates.Issue(ctx, req); err != nil {
		t.Fatalf("second Issue: %v", err)
	}

	certs, err := env.certificates.ListByStudent(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByStudent: %v", err)
	}
	if len(certs) != 2 {
		t.Fatalf("certificate count = %d, want 2", len(certs))
	}
}

func TestRevokeIsOneWay(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cert, err := env.certificates.Issue(ctx, IssueCertificateRequest{
		StudentID: "alice", StudentName: "Alice", Title: "Research Award", Category: "Academic",
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := env.certificates.Revoke(ctx, cert.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	// Second revoke is a visible no-op, not a crash.
	if err := env.certificates.Revoke(ctx, cert.ID); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("second revoke err = %v, want ErrInvalidTransition", err)
	}

	certs, _ := env.certificates.ListByStudent(ctx, "alice")
	if len(certs) != 1 || certs[0].Status != model.CertRevoked {
		t.Fatalf("revoked certificate missing or wrong status: %+v", certs)
	}
}

func TestRevokeUnknownID(t *testing.T) {
	env := newTestEnv()

	if err := env.certificates.Revoke(context.Background(), "no-such-id"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
