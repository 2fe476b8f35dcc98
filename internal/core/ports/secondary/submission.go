package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

type SubmissionRepository interface {
	// ListByAssignment retrieves every submission of one assignment with
	// submitter and assignee resolved
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)

	// GetSubmission retrieves a submission by ID; nil when absent
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	// CreateSubmission stores a new submission
	CreateSubmission(ctx context.Context, sub *domain.Submission) error

	// UpdateGrade sets or clears (nil) a submission's grade
	UpdateGrade(ctx context.Context, submissionID uuid.UUID, grade *float64) error

	// UpdateAssignee sets or clears (nil) the grader responsible for a submission
	UpdateAssignee(ctx context.Context, submissionID uuid.UUID, assigneeID *uuid.UUID) error
}
