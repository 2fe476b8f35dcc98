package domain

import "github.com/google/uuid"

// SortKey selects the comparator for a filtered submission list
type SortKey string

const (
	SortByUser     SortKey = "user"
	SortByGrade    SortKey = "grade"
	SortByCreated  SortKey = "created"
	SortByAssignee SortKey = "assignee"
)

// ToSortKey parses a sort key from a query value. Unknown or empty values
// fall back to sorting by user name rather than erroring.
func ToSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByUser, SortByGrade, SortByCreated, SortByAssignee:
		return SortKey(s)
	default:
		return SortByUser
	}
}

// FilterSettings is derived fresh from the request query on every call; it
// has no persistence of its own beyond the navigation-state echo.
type FilterSettings struct {
	LatestOnly   bool       `json:"latest"`
	AssignedToMe bool       `json:"mine"`
	Search       string     `json:"search,omitempty"`
	SortBy       SortKey    `json:"sortBy"`
	ForceInclude *uuid.UUID `json:"forceInclude,omitempty"`
}

// NewFilterSettings returns the defaults used when query parameters are
// absent or malformed: latest-only on, own submissions only, sorted by user.
func NewFilterSettings() FilterSettings {
	return FilterSettings{
		LatestOnly:   true,
		AssignedToMe: true,
		SortBy:       SortByUser,
	}
}
