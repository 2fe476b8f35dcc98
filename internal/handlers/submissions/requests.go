package submissions

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

// parseFilterQuery derives the filter settings from the request query.
// Missing or malformed values degrade to the defaults instead of erroring:
// latest=true, mine=true, sortBy=user.
func parseFilterQuery(q url.Values) domain.FilterSettings {
	settings := domain.NewFilterSettings()

	if v, err := strconv.ParseBool(q.Get("latest")); err == nil {
		settings.LatestOnly = v
	}
	if v, err := strconv.ParseBool(q.Get("mine")); err == nil {
		settings.AssignedToMe = v
	}
	settings.SortBy = domain.ToSortKey(q.Get("sortBy"))
	settings.Search = q.Get("search")
	if id, err := uuid.Parse(q.Get("forceInclude")); err == nil {
		settings.ForceInclude = &id
	}

	return settings
}

func parseCurrentQuery(q url.Values) *uuid.UUID {
	if id, err := uuid.Parse(q.Get("current")); err == nil {
		return &id
	}
	return nil
}

// ListSubmissionsResponse echoes the effective force-include id so clients
// can mirror it into their location
type ListSubmissionsResponse struct {
	Submissions  []*domain.Submission `json:"submissions"`
	ForceInclude *uuid.UUID           `json:"forceInclude,omitempty"`
}

// NavResponse describes the neighbors of the current submission
type NavResponse struct {
	Previous *domain.Submission `json:"previous,omitempty"`
	Next     *domain.Submission `json:"next,omitempty"`
	Index    int                `json:"index"`
	Total    int                `json:"total"`
}

// SetGradeRequest sets or clears (null) a grade
type SetGradeRequest struct {
	Grade *float64 `json:"grade"`
}

// SetAssigneeRequest sets or clears (null) the responsible grader
type SetAssigneeRequest struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}
