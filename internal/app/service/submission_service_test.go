package service

import (
	"context"
	"errors"
	"testing"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

func TestGetStatusNotSubmittedWhenAbsent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	status, err := env.submissions.GetStatus(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status != model.StatusNotSubmitted {
		t.Fatalf("status = %q, want %q", status, model.StatusNotSubmitted)
	}

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	status, err = env.submissions.GetStatus(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("GetStatus after submit: %v", err)
	}
	if status != model.StatusPending {
		t.Fatalf("status = %q, want %q", status, model.StatusPending)
	}
}

func TestSubmitCapturesRewardFromCatalog(t *testing.T) {
	env := newTestEnv()

	sub, err := env.submit(7, "alice")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.Tokens != 250 {
		t.Fatalf("tokens = %d, want 250", sub.Tokens)
	}
	if sub.ActivityTitle != "Open Source Contribution" {
		t.Fatalf("activity title = %q", sub.ActivityTitle)
	}
}

func TestSubmitUnknownActivity(t *testing.T) {
	env := newTestEnv()

	if _, err := env.submit(99, "alice"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResubmitOverwrites(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := env.submissions.Submit(ctx, SubmitRequest{
		ActivityID: 5,
		StudentID:  "alice",
		ProofType:  model.ProofLink,
		ProofValue: "https://example.edu/evidence",
	})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}

	stored, err := env.submissionRepo.Find(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if stored.ProofValue != second.ProofValue || stored.ProofType != model.ProofLink {
		t.Fatalf("stored record does not match second payload: %+v", stored)
	}
	if stored.Status != model.StatusPending {
		t.Fatalf("status = %q, want pending", stored.Status)
	}

	subs, _ := env.submissionRepo.ListByStudent(ctx, "alice")
	if len(subs) != 1 {
		t.Fatalf("record count = %d, want 1", len(subs))
	}
}

func TestApproveRequiresExistingRecord(t *testing.T) {
	env := newTestEnv()

	if _, err := env.submissions.Approve(context.Background(), 5, "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if pending, _ := env.submissions.ListPending(context.Background()); len(pending) != 0 {
		t.Fatalf("pending list mutated: %v", pending)
	}
}

func TestApproveStampsReviewedAt(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	sub, err := env.submissions.Approve(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if sub.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", sub.Status)
	}
	if sub.ReviewedAt == nil {
		t.Fatal("ReviewedAt not stamped")
	}
}

func TestRejectDeletesRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := env.submissions.Reject(ctx, 5, "alice"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	status, err := env.submissions.GetStatus(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status != model.StatusNotSubmitted {
		t.Fatalf("status after reject = %q, want not_submitted", status)
	}

	// Resubmission works as if fresh.
	sub, err := env.submit(5, "alice")
	if err != nil {
		t.Fatalf("resubmit after reject: %v", err)
	}
	if sub.Status != model.StatusPending {
		t.Fatalf("status = %q, want pending", sub.Status)
	}
}

func TestRejectUnknownRecord(t *testing.T) {
	env := newTestEnv()

	if err := env.submissions.Reject(context.Background(), 5, "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkRedeemedOnlyFromApproved(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// pending -> redeemed is not a transition
	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	if _, err := env.submissions.Approve(ctx, 5, "alice"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); err != nil {
		t.Fatalf("MarkRedeemed: %v", err)
	}

	// No transition out of redeemed.
	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("second redeem err = %v, want ErrInvalidTransition", err)
	}
	status, _ := env.submissions.GetStatus(ctx, 5, "alice")
	if status != model.StatusRedeemed {
		t.Fatalf("status = %q, want redeemed", status)
	}
}

func TestMutationsBroadcastChangeEvents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	var keys []string
	env.notifier.Subscribe(func(key string) { keys = append(keys, key) })

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := env.submissions.Approve(ctx, 5, "alice"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); err != nil {
		t.Fatalf("MarkRedeemed: %v", err)
	}

	want := model.SubmissionKey(5, "alice")
	if len(keys) != 3 {
		t.Fatalf("event count = %d, want 3 (%v)", len(keys), keys)
	}
	for _, k := range keys {
		if k != want {
			t.Fatalf("event key = %q, want %q", k, want)
		}
	}
}
