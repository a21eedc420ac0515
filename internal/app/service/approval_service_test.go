package service

import (
	"context"
	"errors"
	"testing"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

func TestApproveOneCreditsAndLogs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 0)

	sub, err := env.submit(7, "alice") // reward 250
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	outcome, err := env.approvals.ApproveOne(ctx, sub.ActivityID, sub.StudentID)
	if err != nil {
		t.Fatalf("ApproveOne: %v", err)
	}
	if !outcome.Consistent() {
		t.Fatalf("outcome inconsistent: credit=%v log=%v", outcome.CreditErr, outcome.LogErr)
	}
	if outcome.Submission.Status != model.StatusApproved {
		t.Fatalf("status = %q, want approved", outcome.Submission.Status)
	}
	if outcome.Profile.Tokens != 250 {
		t.Fatalf("balance = %d, want 250", outcome.Profile.Tokens)
	}

	txs, _ := env.txRepo.List(ctx, 0, 0)
	if len(txs) != 1 {
		t.Fatalf("transaction count = %d, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Type != model.TxReward || tx.Amount != 250 || tx.From != "Treasury" || tx.To != "alice" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Status != model.TxCompleted {
		t.Fatalf("tx status = %q, want completed", tx.Status)
	}
}

func TestApproveOneNoRecordAborts(t *testing.T) {
	env := newTestEnv()
	env.addProfile("alice", "Alice", 0)

	if _, err := env.approvals.ApproveOne(context.Background(), 5, "alice"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// No ledger effect on abort.
	p, _ := env.ledger.GetProfile(context.Background(), "alice")
	if p.Tokens != 0 {
		t.Fatalf("balance = %d, want 0", p.Tokens)
	}
	if txs, _ := env.txRepo.List(context.Background(), 0, 0); len(txs) != 0 {
		t.Fatalf("transactions appended on aborted approval: %v", txs)
	}
}

// A submission from a student without a profile is the documented
// inconsistency window: the approve step lands, the credit fails, and no log
// entry is written. The window is observable, not silently repaired.
func TestApproveOneMissingProfileLeavesWindow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sub, err := env.submit(7, "mallory")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	outcome, err := env.approvals.ApproveOne(ctx, sub.ActivityID, sub.StudentID)
	if err != nil {
		t.Fatalf("ApproveOne: %v", err)
	}
	if !errors.Is(outcome.CreditErr, common.ErrNotFound) {
		t.Fatalf("CreditErr = %v, want ErrNotFound", outcome.CreditErr)
	}
	if outcome.Consistent() {
		t.Fatal("outcome reported consistent despite failed credit")
	}

	status, _ := env.submissions.GetStatus(ctx, 7, "mallory")
	if status != model.StatusApproved {
		t.Fatalf("status = %q, want approved (the window)", status)
	}
	if txs, _ := env.txRepo.List(ctx, 0, 0); len(txs) != 0 {
		t.Fatalf("log entry written despite failed credit: %v", txs)
	}
}

func TestRejectOneHasNoLedgerEffect(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 100)

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := env.approvals.RejectOne(ctx, 5, "alice"); err != nil {
		t.Fatalf("RejectOne: %v", err)
	}

	p, _ := env.ledger.GetProfile(ctx, "alice")
	if p.Tokens != 100 || p.TotalEarned != 100 {
		t.Fatalf("ledger touched by reject: %+v", p)
	}
	if txs, _ := env.txRepo.List(ctx, 0, 0); len(txs) != 0 {
		t.Fatalf("transaction logged on reject: %v", txs)
	}
}

func TestBulkApproveSumsDistinctAmounts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 0)

	// Rewards 200, 50, 250 across three activities.
	for _, activityID := range []int{3, 5, 7} {
		if _, err := env.submit(activityID, "alice"); err != nil {
			t.Fatalf("Submit(%d): %v", activityID, err)
		}
	}

	pending, err := env.submissions.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}

	results := env.approvals.BulkApprove(ctx, pending)
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("item %d/%s failed: %v", res.ActivityID, res.StudentID, res.Err)
		}
	}

	p, _ := env.ledger.GetProfile(ctx, "alice")
	if p.Tokens != 500 {
		t.Fatalf("balance = %d, want 500 (200+50+250)", p.Tokens)
	}
	if remaining, _ := env.submissions.ListPending(ctx); len(remaining) != 0 {
		t.Fatalf("pending after bulk approve = %d, want 0", len(remaining))
	}
	if txs, _ := env.txRepo.List(ctx, 0, 0); len(txs) != 3 {
		t.Fatalf("transaction count = %d, want 3", len(txs))
	}
}

// A failure partway through a bulk approval keeps the items already
// committed; there is no overall rollback.
func TestBulkApprovePartialFailureKeepsPriorItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 0)
	// bob has no profile, so his credit fails.

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit alice: %v", err)
	}
	if _, err := env.submit(5, "bob"); err != nil {
		t.Fatalf("Submit bob: %v", err)
	}

	pending, _ := env.submissions.ListPending(ctx)
	results := env.approvals.BulkApprove(ctx, pending)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	p, _ := env.ledger.GetProfile(ctx, "alice")
	if p.Tokens != 50 {
		t.Fatalf("alice balance = %d, want 50", p.Tokens)
	}
	bobStatus, _ := env.submissions.GetStatus(ctx, 5, "bob")
	if bobStatus != model.StatusApproved {
		t.Fatalf("bob status = %q, want approved (window)", bobStatus)
	}
}

// The full alice scenario: submit activity 5 (reward 50) with balance 100,
// approve, redeem, redeem again.
func TestAliceScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 100)

	if _, err := env.submit(5, "alice"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	status, _ := env.submissions.GetStatus(ctx, 5, "alice")
	if status != model.StatusPending {
		t.Fatalf("status = %q, want pending", status)
	}

	outcome, err := env.approvals.ApproveOne(ctx, 5, "alice")
	if err != nil {
		t.Fatalf("ApproveOne: %v", err)
	}
	if outcome.Profile.Tokens != 150 {
		t.Fatalf("balance = %d, want 150", outcome.Profile.Tokens)
	}
	txs, _ := env.txRepo.List(ctx, 0, 0)
	if len(txs) != 1 || txs[0].Type != model.TxReward || txs[0].Amount != 50 || txs[0].To != "alice" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}

	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); err != nil {
		t.Fatalf("MarkRedeemed: %v", err)
	}
	if err := env.submissions.MarkRedeemed(ctx, 5, "alice"); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("second redeem err = %v, want ErrInvalidTransition", err)
	}
	status, _ = env.submissions.GetStatus(ctx, 5, "alice")
	if status != model.StatusRedeemed {
		t.Fatalf("status = %q, want redeemed", status)
	}
}
