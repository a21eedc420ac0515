package service

import (
	"context"
	"time"

	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"
	"edu_rewards/internal/platform/notify"
)

// Shared fixture wiring every service against in-memory repositories.
type testEnv struct {
	submissions  *SubmissionService
	ledger       *LedgerService
	approvals    *ApprovalService
	certificates *CertificateService

	submissionRepo *repository.MemorySubmissionRepository
	profileRepo    *repository.MemoryProfileRepository
	txRepo         *repository.MemoryTransactionRepository
	notifier       *notify.ListenerNotifier
}

var testCatalog = []model.Activity{
	{ID: 3, Title: "Hackathon Participation", Slug: "hackathon-participation", Category: "Technical", Reward: 200, ProofType: model.ProofFile},
	{ID: 5, Title: "Attendance", Slug: "attendance", Category: "Academic", Reward: 50, ProofType: model.ProofPercentage},
	{ID: 7, Title: "Open Source Contribution", Slug: "open-source-contribution", Category: "Technical", Reward: 250, ProofType: model.ProofLink},
}

func newTestEnv() *testEnv {
	env := &testEnv{
		submissionRepo: repository.NewMemorySubmissionRepository(),
		profileRepo:    repository.NewMemoryProfileRepository(),
		txRepo:         repository.NewMemoryTransactionRepository(),
		notifier:       notify.NewListenerNotifier(),
	}
	activityRepo := repository.NewMemoryActivityRepository(testCatalog)

	env.submissions = NewSubmissionService(env.submissionRepo, activityRepo, env.notifier)
	env.ledger = NewLedgerService(env.profileRepo)
	env.approvals = NewApprovalService(env.submissions, env.ledger, env.txRepo, "Treasury")
	env.certificates = NewCertificateService(repository.NewMemoryCertificateRepository())
	return env
}

func (e *testEnv) addProfile(id, name string, tokens int) {
	e.profileRepo.Create(context.Background(), &model.UserProfile{
		ID:          id,
		Name:        name,
		Email:       id + "@example.edu",
		Tokens:      tokens,
		TotalEarned: tokens,
		CreatedAt:   time.Now().UTC(),
	})
}

func (e *testEnv) submit(activityID int, studentID string) (*model.Submission, error) {
	return e.submissions.Submit(context.Background(), SubmitRequest{
		ActivityID:   activityID,
		StudentID:    studentID,
		StudentName:  studentID,
		StudentEmail: studentID + "@example.edu",
		ProofType:    model.ProofText,
		ProofValue:   "proof for " + studentID,
	})
}
