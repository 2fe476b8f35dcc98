package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
)

var _ IListService = (*ListService)(nil)

// ListService implements the IListService interface
type ListService struct {
	submissionRepo secondary.SubmissionRepository
	navStore       secondary.NavStateStore
	logger         primary.Logger
}

// NewListService creates a new submission list service
func NewListService(
	submissionRepo secondary.SubmissionRepository,
	navStore secondary.NavStateStore,
	logger primary.Logger,
) *ListService {
	return &ListService{
		submissionRepo: submissionRepo,
		navStore:       navStore,
		logger:         logger,
	}
}

// ListSubmissions loads the assignment's submissions, applies the filters
// and persists the force-include patch, if any, to the viewer's navigation
// state. The persistence is last-write-wins: rapid navigation simply leaves
// the state reflecting the latest call.
func (s *ListService) ListSubmissions(ctx context.Context, assignmentID, actorID uuid.UUID, settings domain.FilterSettings, current *uuid.UUID) (*ListResult, error) {
	subs, err := s.submissionRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	forceInclude := settings.ForceInclude
	if forceInclude == nil {
		state, err := s.navStore.Get(ctx, actorID, assignmentID)
		if err != nil {
			// Navigation state is an optimization; filtering proceeds without it.
			s.logger.Warn("Failed to load navigation state",
				"viewerId", actorID,
				"assignmentId", assignmentID,
				"error", err)
		} else if state != nil {
			forceInclude = state.ForceInclude
		}
	}

	outcome := Apply(subs, Params{
		Settings:     settings,
		ActorID:      actorID,
		Current:      current,
		ForceInclude: forceInclude,
	})

	if outcome.Patch != nil {
		forceInclude = outcome.Patch.ForceInclude
		if forceInclude == nil {
			if err := s.navStore.Clear(ctx, actorID, assignmentID); err != nil {
				s.logger.Error("Failed to clear navigation state",
					"viewerId", actorID,
					"assignmentId", assignmentID,
					"error", err)
			}
		} else {
			state := &domain.NavState{
				ForceInclude: forceInclude,
				Settings:     settings,
				UpdatedAt:    time.Now(),
			}
			if err := s.navStore.Save(ctx, actorID, assignmentID, state); err != nil {
				s.logger.Error("Failed to save navigation state",
					"viewerId", actorID,
					"assignmentId", assignmentID,
					"error", err)
			}
		}
	}

	return &ListResult{
		Submissions:  outcome.Submissions,
		ForceInclude: forceInclude,
	}, nil
}

// Neighbors finds the current submission by linear scan over the filtered
// order and returns its immediate neighbors. Absent current yields neither.
func (s *ListService) Neighbors(ctx context.Context, assignmentID, actorID uuid.UUID, settings domain.FilterSettings, current uuid.UUID) (*NavResult, error) {
	result, err := s.ListSubmissions(ctx, assignmentID, actorID, settings, &current)
	if err != nil {
		return nil, err
	}

	nav := &NavResult{Index: -1, Total: len(result.Submissions)}
	for i, sub := range result.Submissions {
		if sub.ID == current {
			nav.Index = i
			if i > 0 {
				nav.Previous = result.Submissions[i-1]
			}
			if i+1 < len(result.Submissions) {
				nav.Next = result.Submissions[i+1]
			}
			break
		}
	}
	return nav, nil
}
