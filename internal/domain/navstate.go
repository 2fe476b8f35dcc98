package domain

import (
	"time"

	"github.com/google/uuid"
)

// NavState is the per-viewer navigation state kept for one assignment: the
// force-include exception and the last filter settings the viewer used. It
// is what lets the currently open submission survive filters across
// soft-navigation instead of living only in one request's query string.
type NavState struct {
	ForceInclude *uuid.UUID     `json:"forceInclude,omitempty"`
	Settings     FilterSettings `json:"settings"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
