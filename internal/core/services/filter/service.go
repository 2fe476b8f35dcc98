package filter

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

// ListResult is the ordered view plus the effective force-include exception
// after any patch has been applied; handlers echo it so clients can keep
// their location (URL) in sync.
type ListResult struct {
	Submissions  []*domain.Submission
	ForceInclude *uuid.UUID
}

// NavResult describes the previous/next neighbors of the current submission
// within the filtered order. Index is -1 when the current submission is not
// part of the view.
type NavResult struct {
	Previous *domain.Submission
	Next     *domain.Submission
	Index    int
	Total    int
}

// IListService defines the interface for browsing an assignment's submissions
type IListService interface {
	// ListSubmissions computes the visible, ordered submissions for one
	// viewer and persists the force-include exception when it changed
	ListSubmissions(ctx context.Context, assignmentID, actorID uuid.UUID, settings domain.FilterSettings, current *uuid.UUID) (*ListResult, error)

	// Neighbors resolves the prev/next submissions around current in the
	// same filtered order ListSubmissions would produce
	Neighbors(ctx context.Context, assignmentID, actorID uuid.UUID, settings domain.FilterSettings, current uuid.UUID) (*NavResult, error)
}
