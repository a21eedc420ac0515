package service

import (
	"context"
	"errors"
	"time"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"
	"edu_rewards/internal/platform/notify"
)

// SubmissionService owns the submission state machine:
//
//	not_submitted --submit--> pending --approve--> approved --redeem--> redeemed
//	pending --reject--> (record deleted, student may resubmit)
//
// Every mutation broadcasts the changed key so open views can refresh counts.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	activityRepo   repository.ActivityRepository
	notifier       notify.Notifier
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	actRepo repository.ActivityRepository,
	notifier notify.Notifier,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		activityRepo:   actRepo,
		notifier:       notifier,
	}
}

type SubmitRequest struct {
	ActivityID   int             `json:"activity_id"`
	StudentID    string          `json:"student_id"`
	StudentName  string          `json:"student_name"`
	StudentEmail string          `json:"student_email"`
	ProofType    model.ProofType `json:"proof_type"`
	ProofValue   string          `json:"proof_value"`
}

// Submit records a proof submission, overwriting any prior record for the
// same (activity, student) key. The activity's reward is captured on the
// record now; later catalog changes never retouch it.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*model.Submission, error) {
	if req.StudentID == "" || req.ProofValue == "" {
		return nil, common.ErrBadRequest
	}

	activity, err := s.activityRepo.Find(ctx, req.ActivityID)
	if err != nil {
		return nil, common.Errorf("activity not found: %w", err)
	}

	sub := &model.Submission{
		ActivityID:    activity.ID,
		ActivityTitle: activity.Title,
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		StudentEmail:  req.StudentEmail,
		Status:        model.StatusPending,
		ProofType:     req.ProofType,
		ProofValue:    req.ProofValue,
		Tokens:        activity.Reward,
		SubmittedAt:   time.Now().UTC(),
	}

	if err := s.submissionRepo.Upsert(ctx, sub); err != nil {
		return nil, common.Errorf("failed to store submission: %w", err)
	}
	s.notifier.SubmissionChanged(sub.Key())
	return sub, nil
}

// GetStatus reports not_submitted when no record exists; absence is the
// derived state, never a stored one.
func (s *SubmissionService) GetStatus(ctx context.Context, activityID int, studentID string) (model.SubmissionStatus, error) {
	sub, err := s.submissionRepo.Find(ctx, activityID, studentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.StatusNotSubmitted, nil
		}
		return "", common.Errorf("failed to read submission: %w", err)
	}
	return sub.Status, nil
}

func (s *SubmissionService) ListPending(ctx context.Context) ([]model.Submission, error) {
	return s.submissionRepo.ListPending(ctx)
}

func (s *SubmissionService) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	return s.submissionRepo.ListByStudent(ctx, studentID)
}

// Approve transitions pending -> approved and stamps the review time.
func (s *SubmissionService) Approve(ctx context.Context, activityID int, studentID string) (*model.Submission, error) {
	if _, err := s.submissionRepo.Find(ctx, activityID, studentID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ok, err := s.submissionRepo.SetStatus(ctx, activityID, studentID, model.StatusPending, model.StatusApproved, &now)
	if err != nil {
		return nil, common.Errorf("failed to approve submission: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidTransition
	}
	s.notifier.SubmissionChanged(model.SubmissionKey(activityID, studentID))
	return s.submissionRepo.Find(ctx, activityID, studentID)
}

// Reject deletes the record entirely rather than flagging it, so the student
// can resubmit from scratch. Rejection keeps no history.
func (s *SubmissionService) Reject(ctx context.Context, activityID int, studentID string) error {
	ok, err := s.submissionRepo.Delete(ctx, activityID, studentID)
	if err != nil {
		return common.Errorf("failed to reject submission: %w", err)
	}
	if !ok {
		return common.ErrNotFound
	}
	s.notifier.SubmissionChanged(model.SubmissionKey(activityID, studentID))
	return nil
}

// MarkRedeemed transitions approved -> redeemed. There is no transition out
// of redeemed.
func (s *SubmissionService) MarkRedeemed(ctx context.Context, activityID int, studentID string) error {
	if _, err := s.submissionRepo.Find(ctx, activityID, studentID); err != nil {
		return err
	}
	ok, err := s.submissionRepo.SetStatus(ctx, activityID, studentID, model.StatusApproved, model.StatusRedeemed, nil)
	if err != nil {
		return common.Errorf("failed to mark redeemed: %w", err)
	}
	if !ok {
		return common.ErrInvalidTransition
	}
	s.notifier.SubmissionChanged(model.SubmissionKey(activityID, studentID))
	return nil
}
