package review

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

// IReviewService defines the interface for grading mutations
type IReviewService interface {
	// SetGrade sets a submission's grade; nil clears it
	SetGrade(ctx context.Context, submissionID uuid.UUID, grade *float64) (*domain.Submission, error)

	// AssignGrader sets the grader responsible for a submission; nil unassigns
	AssignGrader(ctx context.Context, submissionID uuid.UUID, assigneeID *uuid.UUID) (*domain.Submission, error)

	// HandIn creates a new submission for an assignment on behalf of the author
	HandIn(ctx context.Context, assignmentID, authorID uuid.UUID) (*domain.Submission, error)
}
