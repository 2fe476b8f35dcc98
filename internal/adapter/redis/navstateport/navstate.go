package navstateport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
)

const navStateKeyPrefix = "navstate:"

var _ secondary.NavStateStore = (*NavStateStore)(nil)

// NavStateStore keeps per-viewer navigation state in Redis. Plain SET makes
// writes last-write-wins, which is the only ordering the filter contract
// requires under rapid prev/next navigation.
type NavStateStore struct {
	redisClient *redis.Client
	logger      primary.Logger
	ttl         time.Duration
}

// NewNavStateStore creates a new Redis navigation-state store
func NewNavStateStore(redisClient *redis.Client, logger primary.Logger, ttl time.Duration) *NavStateStore {
	return &NavStateStore{
		redisClient: redisClient,
		logger:      logger,
		ttl:         ttl,
	}
}

func navStateKey(viewerID, assignmentID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", navStateKeyPrefix, viewerID, assignmentID)
}

// Get retrieves a viewer's navigation state for one assignment; nil when the
// viewer has none recorded (or it expired).
func (s *NavStateStore) Get(ctx context.Context, viewerID, assignmentID uuid.UUID) (*domain.NavState, error) {
	data, err := s.redisClient.Get(ctx, navStateKey(viewerID, assignmentID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get navigation state: %w", err)
	}

	var state domain.NavState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal navigation state: %w", err)
	}
	return &state, nil
}

// Save stores a viewer's navigation state with expiration
func (s *NavStateStore) Save(ctx context.Context, viewerID, assignmentID uuid.UUID, state *domain.NavState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("Failed to marshal navigation state", "error", err)
		return fmt.Errorf("failed to marshal navigation state: %w", err)
	}

	key := navStateKey(viewerID, assignmentID)
	if err := s.redisClient.Set(ctx, key, stateJSON, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save navigation state", "error", err)
		return fmt.Errorf("failed to save navigation state: %w", err)
	}

	return nil
}

// Clear drops a viewer's recorded navigation state
func (s *NavStateStore) Clear(ctx context.Context, viewerID, assignmentID uuid.UUID) error {
	if err := s.redisClient.Del(ctx, navStateKey(viewerID, assignmentID)).Err(); err != nil {
		return fmt.Errorf("failed to clear navigation state: %w", err)
	}
	return nil
}
