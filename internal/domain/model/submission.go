package model

import (
	"fmt"
	"time"
)

type SubmissionStatus string

const (
	// StatusNotSubmitted is derived from the absence of a record; it is never
	// stored.
	StatusNotSubmitted SubmissionStatus = "not_submitted"
	StatusPending      SubmissionStatus = "pending"
	StatusApproved     SubmissionStatus = "approved"
	StatusRedeemed     SubmissionStatus = "redeemed"
)

type ProofType string

const (
	ProofFile       ProofType = "file"
	ProofText       ProofType = "text"
	ProofLink       ProofType = "link"
	ProofPercentage ProofType = "percentage"
)

// Submission is one student's claim of having completed an activity. One row
// per (activity, student) pair; resubmission overwrites.
type Submission struct {
	ActivityID    int              `json:"activity_id"`
	ActivityTitle string           `json:"activity_title"`
	StudentID     string           `json:"student_id"`
	StudentName   string           `json:"student_name"`
	StudentEmail  string           `json:"student_email"`
	Status        SubmissionStatus `json:"status"`
	ProofType     ProofType        `json:"proof_type"`
	ProofValue    string           `json:"proof_value"`
	// Tokens is the reward captured at submission time. Catalog changes after
	// submission must not alter it.
	Tokens      int        `json:"tokens"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// Key returns the composite key used for change notifications.
func (s *Submission) Key() string {
	return SubmissionKey(s.ActivityID, s.StudentID)
}

func SubmissionKey(activityID int, studentID string) string {
	return fmt.Sprintf("%d:%s", activityID, studentID)
}
