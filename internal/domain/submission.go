package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents one hand-in of student (or group) work for an assignment
type Submission struct {
	ID           uuid.UUID `json:"id"`
	AssignmentID uuid.UUID `json:"assignmentId"`
	User         Users     `json:"user"`
	Assignee     *Users    `json:"assignee,omitempty"`
	Grade        *float64  `json:"grade"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSubmission creates a new submission. IDs are uuid V7 so insertion order
// is recoverable from the id bytes.
func NewSubmission(assignmentID uuid.UUID, author Users) (*Submission, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Submission{
		ID:           id,
		AssignmentID: assignmentID,
		User:         author,
		CreatedAt:    time.Now(),
	}, nil
}

type SubmissionTable struct {
	ID           string
	AssignmentID string
	UserID       string
	AssigneeID   string
	Grade        string
	CreatedAt    string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:           "id",
		AssignmentID: "assignment_id",
		UserID:       "user_id",
		AssigneeID:   "assignee_id",
		Grade:        "grade",
		CreatedAt:    "created_at",
	}
}

func (t SubmissionTable) TableName() string {
	return "submissions"
}
