package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
	"gitlab.com/gradeview-2025.net/internal/static/errs"
)

// Grades run on the platform's 0..10 scale.
const (
	gradeMin = 0
	gradeMax = 10
)

var _ IReviewService = (*ReviewService)(nil)

// ReviewService implements the IReviewService interface
type ReviewService struct {
	submissionRepo secondary.SubmissionRepository
	userPort       secondary.UserPort
	logger         primary.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	submissionRepo secondary.SubmissionRepository,
	userPort secondary.UserPort,
	logger primary.Logger,
) *ReviewService {
	return &ReviewService{
		submissionRepo: submissionRepo,
		userPort:       userPort,
		logger:         logger,
	}
}

// SetGrade validates and stores a grade
func (s *ReviewService) SetGrade(ctx context.Context, submissionID uuid.UUID, grade *float64) (*domain.Submission, error) {
	if grade != nil && (*grade < gradeMin || *grade > gradeMax) {
		return nil, errs.GradeOutOfRange
	}

	sub, err := s.submissionRepo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub == nil {
		return nil, errs.SubmissionNotFound
	}

	if err := s.submissionRepo.UpdateGrade(ctx, submissionID, grade); err != nil {
		return nil, fmt.Errorf("failed to update grade: %w", err)
	}

	s.logger.Info("Updated grade",
		"submissionId", submissionID,
		"grade", grade)

	sub.Grade = grade
	return sub, nil
}

// AssignGrader validates the grader and stores the assignment
func (s *ReviewService) AssignGrader(ctx context.Context, submissionID uuid.UUID, assigneeID *uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissionRepo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub == nil {
		return nil, errs.SubmissionNotFound
	}

	var grader *domain.Users
	if assigneeID != nil {
		grader, err = s.userPort.Get(ctx, *assigneeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get grader: %w", err)
		}
		if grader == nil {
			return nil, errs.GraderNotFound
		}
	}

	if err := s.submissionRepo.UpdateAssignee(ctx, submissionID, assigneeID); err != nil {
		return nil, fmt.Errorf("failed to update assignee: %w", err)
	}

	s.logger.Info("Updated assignee",
		"submissionId", submissionID,
		"assigneeId", assigneeID)

	sub.Assignee = grader
	return sub, nil
}

// HandIn creates a submission for the author
func (s *ReviewService) HandIn(ctx context.Context, assignmentID, authorID uuid.UUID) (*domain.Submission, error) {
	author, err := s.userPort.Get(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	if author == nil {
		return nil, errs.AuthorNotFound
	}

	sub, err := domain.NewSubmission(assignmentID, *author)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if err := s.submissionRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info("Created submission",
		"submissionId", sub.ID,
		"assignmentId", assignmentID,
		"authorId", authorID)

	return sub, nil
}
