package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"

	"github.com/google/uuid"
)

// ApprovalService orchestrates the one mutation that crosses store
// boundaries: approving a submission marks it approved, credits the student's
// balance, and appends a reward entry to the transaction log.
//
// The three writes are deliberately sequential and non-transactional. A
// failure after the approve step leaves the submission approved without a
// matching credit or log line; callers see that window in the returned
// outcome instead of it being hidden or rolled back.
type ApprovalService struct {
	submissions *SubmissionService
	ledger      *LedgerService
	txRepo      repository.TransactionRepository
	treasury    string
}

func NewApprovalService(
	submissions *SubmissionService,
	ledger *LedgerService,
	txRepo repository.TransactionRepository,
	treasury string,
) *ApprovalService {
	return &ApprovalService{
		submissions: submissions,
		ledger:      ledger,
		txRepo:      txRepo,
		treasury:    treasury,
	}
}

// ApprovalOutcome reports the per-step result of one approval. Submission is
// always set on success of the approve step; CreditErr and LogErr carry the
// post-approval failures that make up the inconsistency window.
type ApprovalOutcome struct {
	Submission *model.Submission
	Profile    *model.UserProfile
	CreditErr  error
	LogErr     error
}

// Consistent reports whether every step of the approval landed.
func (o *ApprovalOutcome) Consistent() bool {
	return o.CreditErr == nil && o.LogErr == nil
}

// ApproveOne approves a single submission. The submission is re-fetched by
// key so a stale caller snapshot cannot cause a lost update. An error return
// means the approve step itself failed and no ledger effect happened.
func (s *ApprovalService) ApproveOne(ctx context.Context, activityID int, studentID string) (*ApprovalOutcome, error) {
	sub, err := s.submissions.Approve(ctx, activityID, studentID)
	if err != nil {
		return nil, err
	}

	outcome := &ApprovalOutcome{Submission: sub}

	profile, err := s.ledger.Credit(ctx, studentID, sub.Tokens)
	if err != nil {
		outcome.CreditErr = err
		log.Printf("WARN: submission %s approved but credit failed: %v", sub.Key(), err)
		return outcome, nil
	}
	outcome.Profile = profile

	tx := &model.Transaction{
		ID:          uuid.NewString(),
		Hash:        generateTxHash(),
		Type:        model.TxReward,
		From:        s.treasury,
		To:          studentID,
		Amount:      sub.Tokens,
		Status:      model.TxCompleted,
		Timestamp:   time.Now().UTC(),
		Description: fmt.Sprintf("Reward for %q", sub.ActivityTitle),
	}
	if err := s.txRepo.Append(ctx, tx); err != nil {
		outcome.LogErr = err
		log.Printf("WARN: submission %s approved and credited but log append failed: %v", sub.Key(), err)
	}
	return outcome, nil
}

// RejectOne deletes the submission. No ledger interaction, no log entry.
func (s *ApprovalService) RejectOne(ctx context.Context, activityID int, studentID string) error {
	return s.submissions.Reject(ctx, activityID, studentID)
}

// BulkApprovalResult pairs one submission key with its approval result.
type BulkApprovalResult struct {
	ActivityID int
	StudentID  string
	Outcome    *ApprovalOutcome
	Err        error
}

// BulkApprove applies ApproveOne to each submission in the caller-supplied
// snapshot, sequentially. A failure partway through does not roll back prior
// items; each item commits or fails on its own.
func (s *ApprovalService) BulkApprove(ctx context.Context, subs []model.Submission) []BulkApprovalResult {
	results := make([]BulkApprovalResult, 0, len(subs))
	for _, sub := range subs {
		outcome, err := s.ApproveOne(ctx, sub.ActivityID, sub.StudentID)
		results = append(results, BulkApprovalResult{
			ActivityID: sub.ActivityID,
			StudentID:  sub.StudentID,
			Outcome:    outcome,
			Err:        err,
		})
	}
	return results
}

func generateTxHash() string {
	b := make([]byte, 32)
	rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}
