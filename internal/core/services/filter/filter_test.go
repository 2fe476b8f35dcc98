package filter_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gitlab.com/gradeview-2025.net/internal/core/services/filter"
	"gitlab.com/gradeview-2025.net/internal/domain"
)

var (
	alice = domain.Users{ID: uid(0xa1), UserName: "alice", DisplayName: "Alice"}
	bob   = domain.Users{ID: uid(0xb0), UserName: "bob", DisplayName: "bob"}
	ann   = domain.Users{ID: uid(0xa0), UserName: "ann", DisplayName: "ann"}
	carol = domain.Users{ID: uid(0xc0), UserName: "carol", DisplayName: "Carol"}

	t1 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 = t1.Add(time.Hour)
	t3 = t1.Add(2 * time.Hour)
)

// uid builds deterministic ids whose byte order follows n, matching the
// insertion-order property V7 ids have in production.
func uid(n byte) uuid.UUID {
	var u uuid.UUID
	u[15] = n
	return u
}

func sub(id byte, user domain.Users, createdAt time.Time, assignee *domain.Users, grade *float64) *domain.Submission {
	return &domain.Submission{
		ID:        uid(id),
		User:      user,
		Assignee:  assignee,
		Grade:     grade,
		CreatedAt: createdAt,
	}
}

func gradePtr(g float64) *float64 { return &g }

func ids(subs []*domain.Submission) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func defaultSettings() domain.FilterSettings {
	return domain.NewFilterSettings()
}

// The three-submission scenario: bob hands in twice, his latest is assigned
// to alice; ann's only hand-in is assigned to alice too.
func scenarioSubs() []*domain.Submission {
	return []*domain.Submission{
		sub(1, bob, t1, nil, nil),
		sub(2, bob, t2, &alice, nil),
		sub(3, ann, t3, &alice, nil),
	}
}

func TestApplyLatestAndAssigned(t *testing.T) {
	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings: defaultSettings(),
		ActorID:  alice.ID,
	})

	assert.Equal(t, []uuid.UUID{uid(3), uid(2)}, ids(out.Submissions))
	assert.Nil(t, out.Patch)
}

func TestApplyCurrentRetained(t *testing.T) {
	current := uid(1)
	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings: defaultSettings(),
		ActorID:  alice.ID,
		Current:  &current,
	})

	// Submission 1 is neither bob's latest nor assigned to alice, but the
	// viewer has it open, so it must stay visible.
	assert.Equal(t, []uuid.UUID{uid(3), uid(1)}, ids(out.Submissions))

	// The exception was not yet recorded, so Apply asks for it to be.
	if assert.NotNil(t, out.Patch) {
		if assert.NotNil(t, out.Patch.ForceInclude) {
			assert.Equal(t, current, *out.Patch.ForceInclude)
		}
	}
}

func TestApplyPatchConverges(t *testing.T) {
	current := uid(1)
	first := filter.Apply(scenarioSubs(), filter.Params{
		Settings: defaultSettings(),
		ActorID:  alice.ID,
		Current:  &current,
	})
	assert.NotNil(t, first.Patch)

	second := filter.Apply(scenarioSubs(), filter.Params{
		Settings:     defaultSettings(),
		ActorID:      alice.ID,
		Current:      &current,
		ForceInclude: first.Patch.ForceInclude,
	})

	assert.Equal(t, ids(first.Submissions), ids(second.Submissions))
	assert.Nil(t, second.Patch)
}

func TestApplySearch(t *testing.T) {
	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings: withSearch(defaultSettings(), "ann"),
		ActorID:  alice.ID,
	})

	assert.Equal(t, []uuid.UUID{uid(3)}, ids(out.Submissions))
}

func TestApplySearchKeepsCurrent(t *testing.T) {
	current := uid(2)
	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings: withSearch(defaultSettings(), "ann"),
		ActorID:  alice.ID,
		Current:  &current,
	})

	// Current does not match "ann" but stays retained.
	assert.Equal(t, []uuid.UUID{uid(3), uid(2)}, ids(out.Submissions))
}

func TestApplySearchByGrade(t *testing.T) {
	subs := []*domain.Submission{
		sub(1, ann, t1, nil, gradePtr(7.5)),
		sub(2, bob, t2, nil, gradePtr(9)),
	}
	settings := defaultSettings()
	settings.AssignedToMe = false

	out := filter.Apply(subs, filter.Params{
		Settings: withSearch(settings, "7.5"),
		ActorID:  alice.ID,
	})

	assert.Equal(t, []uuid.UUID{uid(1)}, ids(out.Submissions))
}

func TestApplyIdempotent(t *testing.T) {
	p := filter.Params{
		Settings: defaultSettings(),
		ActorID:  alice.ID,
	}
	first := filter.Apply(scenarioSubs(), p)
	second := filter.Apply(scenarioSubs(), p)

	assert.Equal(t, ids(first.Submissions), ids(second.Submissions))
}

func TestApplyEmptyInput(t *testing.T) {
	out := filter.Apply(nil, filter.Params{
		Settings: defaultSettings(),
		ActorID:  alice.ID,
	})

	assert.Empty(t, out.Submissions)
	assert.Nil(t, out.Patch)
}

func TestLatestOnlyEqualTimestamps(t *testing.T) {
	// Same submitter, same timestamp: the higher id is assumed later-inserted.
	subs := []*domain.Submission{
		sub(2, bob, t1, nil, nil),
		sub(1, bob, t1, nil, nil),
	}
	settings := defaultSettings()
	settings.AssignedToMe = false

	out := filter.Apply(subs, filter.Params{Settings: settings, ActorID: alice.ID})

	assert.Equal(t, []uuid.UUID{uid(2)}, ids(out.Submissions))
}

func TestLatestOnlyDisabledKeepsAll(t *testing.T) {
	settings := defaultSettings()
	settings.LatestOnly = false
	settings.AssignedToMe = false
	settings.SortBy = domain.SortByCreated

	out := filter.Apply(scenarioSubs(), filter.Params{Settings: settings, ActorID: alice.ID})

	assert.Equal(t, []uuid.UUID{uid(1), uid(2), uid(3)}, ids(out.Submissions))
}

func TestSortByUserCaseInsensitiveStable(t *testing.T) {
	// "bob" and "Bob" compare equal case-insensitively; id breaks the tie.
	bobUpper := domain.Users{ID: uid(0xb1), UserName: "bob2", DisplayName: "Bob"}
	subs := []*domain.Submission{
		sub(4, bobUpper, t1, nil, nil),
		sub(2, bob, t2, nil, nil),
		sub(3, ann, t3, nil, nil),
	}
	settings := defaultSettings()
	settings.AssignedToMe = false

	out := filter.Apply(subs, filter.Params{Settings: settings, ActorID: alice.ID})

	assert.Equal(t, []uuid.UUID{uid(3), uid(2), uid(4)}, ids(out.Submissions))
}

func TestSortByGradeNullsLast(t *testing.T) {
	subs := []*domain.Submission{
		sub(1, ann, t1, nil, nil),
		sub(2, bob, t2, nil, gradePtr(8)),
		sub(3, carol, t3, nil, gradePtr(6)),
	}
	settings := defaultSettings()
	settings.AssignedToMe = false
	settings.SortBy = domain.SortByGrade

	out := filter.Apply(subs, filter.Params{Settings: settings, ActorID: alice.ID})

	assert.Equal(t, []uuid.UUID{uid(3), uid(2), uid(1)}, ids(out.Submissions))
}

func TestSortByAssigneeNullsLast(t *testing.T) {
	subs := []*domain.Submission{
		sub(1, ann, t1, nil, nil),
		sub(2, bob, t2, &carol, nil),
		sub(3, carol, t3, &alice, nil),
	}
	settings := defaultSettings()
	settings.AssignedToMe = false
	settings.SortBy = domain.SortByAssignee

	out := filter.Apply(subs, filter.Params{Settings: settings, ActorID: alice.ID})

	assert.Equal(t, []uuid.UUID{uid(3), uid(2), uid(1)}, ids(out.Submissions))
}

func TestPatchClearsStaleForeignException(t *testing.T) {
	// The recorded exception points at submission 1, but the viewer now has
	// submission 2 open and it matches on its own; the stale exception is
	// dropped so it is not forced onto other submissions.
	stale := uid(1)
	current := uid(2)

	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings:     defaultSettings(),
		ActorID:      alice.ID,
		Current:      &current,
		ForceInclude: &stale,
	})

	if assert.NotNil(t, out.Patch) {
		assert.Nil(t, out.Patch.ForceInclude)
	}
}

func TestForceIncludeWithoutCurrent(t *testing.T) {
	// A recorded exception keeps its submission visible even when the viewer
	// has nothing open, and it stands in for bob's latest rather than showing
	// bob twice. No patch is emitted since there is no current.
	forced := uid(1)

	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings:     defaultSettings(),
		ActorID:      alice.ID,
		ForceInclude: &forced,
	})

	assert.Equal(t, []uuid.UUID{uid(3), uid(1)}, ids(out.Submissions))
	assert.Nil(t, out.Patch)
}

func TestLatestOnlyCurrentReplacesLatest(t *testing.T) {
	// Latest-only must still show each submitter at most once: when the
	// viewer opens an older hand-in, it takes the place of that submitter's
	// latest instead of appearing next to it.
	current := uid(1)
	settings := defaultSettings()
	settings.AssignedToMe = false

	out := filter.Apply(scenarioSubs(), filter.Params{
		Settings: settings,
		ActorID:  alice.ID,
		Current:  &current,
	})

	assert.Equal(t, []uuid.UUID{uid(3), uid(1)}, ids(out.Submissions))
	assert.NotContains(t, ids(out.Submissions), uid(2))
}

func withSearch(s domain.FilterSettings, needle string) domain.FilterSettings {
	s.Search = needle
	return s
}
