package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

// NavStateStore keeps one viewer's navigation state per assignment. Writes
// are last-write-wins; readers tolerate a missing state (nil, nil).
type NavStateStore interface {
	Get(ctx context.Context, viewerID, assignmentID uuid.UUID) (*domain.NavState, error)
	Save(ctx context.Context, viewerID, assignmentID uuid.UUID, state *domain.NavState) error
	Clear(ctx context.Context, viewerID, assignmentID uuid.UUID) error
}
