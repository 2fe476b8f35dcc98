package filter

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/gradeview-2025.net/internal/domain"
)

// Params carries everything one Apply call needs. Current is the submission
// the viewer has open; ForceInclude is the exception recorded in navigation
// state from an earlier visit. Both are exempt from exclusion so browsing a
// submission never hides it.
type Params struct {
	Settings     domain.FilterSettings
	ActorID      uuid.UUID
	Current      *uuid.UUID
	ForceInclude *uuid.UUID
}

// ForcePatch is the navigation-state write the caller must persist. A nil
// ForceInclude clears a stale exception; Apply never writes state itself.
type ForcePatch struct {
	ForceInclude *uuid.UUID
}

// Outcome is the filtered, ordered view plus the optional state patch.
// Patch is nil once the navigation state has converged, so applying the
// patch and re-running Apply with identical inputs is a fixpoint.
type Outcome struct {
	Submissions []*domain.Submission
	Patch       *ForcePatch
}

// Apply computes the visible, ordered subset of submissions. It reduces to
// the latest hand-in per submitter, restricts to the actor's assigned
// submissions, matches the search text, and sorts. The current and
// force-included submissions survive every exclusion step. It is a pure
// function over its inputs and never errors; malformed settings degrade to
// defaults upstream.
func Apply(submissions []*domain.Submission, p Params) Outcome {
	working := submissions
	currentExcluded := false

	exempt := func(s *domain.Submission) bool {
		if p.Current != nil && s.ID == *p.Current {
			return true
		}
		return p.ForceInclude != nil && s.ID == *p.ForceInclude
	}
	isCurrent := func(s *domain.Submission) bool {
		return p.Current != nil && s.ID == *p.Current
	}

	if p.Settings.LatestOnly {
		newest := latestPerUser(working)

		// An exempt submission stands in for its submitter: the natural
		// latest is dropped so the submitter still appears exactly once.
		replaced := make(map[uuid.UUID]bool)
		for _, s := range working {
			if exempt(s) && newest[s.User.ID] != s.ID {
				replaced[s.User.ID] = true
			}
		}

		reduced := make([]*domain.Submission, 0, len(working))
		for _, s := range working {
			if exempt(s) {
				reduced = append(reduced, s)
				if isCurrent(s) && newest[s.User.ID] != s.ID {
					currentExcluded = true
				}
				continue
			}
			if newest[s.User.ID] == s.ID && !replaced[s.User.ID] {
				reduced = append(reduced, s)
			}
		}
		working = reduced
	}

	if p.Settings.AssignedToMe {
		kept := make([]*domain.Submission, 0, len(working))
		for _, s := range working {
			if s.Assignee != nil && s.Assignee.ID == p.ActorID {
				kept = append(kept, s)
				continue
			}
			if exempt(s) {
				kept = append(kept, s)
				if isCurrent(s) {
					currentExcluded = true
				}
			}
		}
		working = kept
	}

	if needle := strings.ToLower(strings.TrimSpace(p.Settings.Search)); needle != "" {
		kept := make([]*domain.Submission, 0, len(working))
		for _, s := range working {
			if matchesSearch(s, needle) {
				kept = append(kept, s)
				continue
			}
			if exempt(s) {
				// Retained, but the submission does not satisfy the
				// predicate; callers must not assume it does.
				kept = append(kept, s)
				if isCurrent(s) {
					currentExcluded = true
				}
			}
		}
		working = kept
	}

	ordered := make([]*domain.Submission, len(working))
	copy(ordered, working)
	sortSubmissions(ordered, p.Settings.SortBy)

	return Outcome{
		Submissions: ordered,
		Patch:       buildPatch(p, currentExcluded),
	}
}

// buildPatch decides the one permitted side effect: record the current
// submission as the exception when the filters would have dropped it, and
// clear an exception recorded for a different submission once the current
// one matches on its own.
func buildPatch(p Params, currentExcluded bool) *ForcePatch {
	if p.Current == nil {
		return nil
	}
	if currentExcluded {
		if p.ForceInclude == nil || *p.ForceInclude != *p.Current {
			id := *p.Current
			return &ForcePatch{ForceInclude: &id}
		}
		return nil
	}
	if p.ForceInclude != nil && *p.ForceInclude != *p.Current {
		return &ForcePatch{}
	}
	return nil
}

// latestPerUser maps each submitter to the id of their most recent
// submission. Equal timestamps prefer the higher id, which with V7 ids is
// the later-inserted row.
func latestPerUser(subs []*domain.Submission) map[uuid.UUID]uuid.UUID {
	newest := make(map[uuid.UUID]*domain.Submission)
	for _, s := range subs {
		best, ok := newest[s.User.ID]
		if !ok {
			newest[s.User.ID] = s
			continue
		}
		if s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && idLess(best, s)) {
			newest[s.User.ID] = s
		}
	}
	latest := make(map[uuid.UUID]uuid.UUID, len(newest))
	for userID, s := range newest {
		latest[userID] = s.ID
	}
	return latest
}

func matchesSearch(s *domain.Submission, needle string) bool {
	if strings.Contains(strings.ToLower(s.User.DisplayName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(s.User.UserName), needle) {
		return true
	}
	if s.Grade != nil {
		grade := strconv.FormatFloat(*s.Grade, 'f', -1, 64)
		if strings.Contains(grade, needle) {
			return true
		}
	}
	return false
}

func sortSubmissions(subs []*domain.Submission, key domain.SortKey) {
	var less func(a, b *domain.Submission) bool
	switch key {
	case domain.SortByGrade:
		less = func(a, b *domain.Submission) bool {
			if a.Grade == nil || b.Grade == nil {
				// nulls last
				return a.Grade != nil && b.Grade == nil
			}
			return *a.Grade < *b.Grade
		}
	case domain.SortByCreated:
		less = func(a, b *domain.Submission) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case domain.SortByAssignee:
		less = func(a, b *domain.Submission) bool {
			if a.Assignee == nil || b.Assignee == nil {
				return a.Assignee != nil && b.Assignee == nil
			}
			return strings.ToLower(a.Assignee.DisplayName) < strings.ToLower(b.Assignee.DisplayName)
		}
	default:
		less = func(a, b *domain.Submission) bool {
			return strings.ToLower(a.User.DisplayName) < strings.ToLower(b.User.DisplayName)
		}
	}

	sort.SliceStable(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return idLess(a, b)
	})
}

func idLess(a, b *domain.Submission) bool {
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
