package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync/models"
)

func newTestSession(t *testing.T) *searchSession {
	t.Helper()
	users, rules := threeUsers()
	sess, err := newTestService(users, rules, nil).newSearchSession()
	require.NoError(t, err)
	return sess
}

func attendeeSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestCheckConstraintsPassesUnconstrained(t *testing.T) {
	sess := newTestSession(t)
	v := sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1", "u2", "u3"), models.ConstraintSpec{})
	assert.True(t, v.Empty())
}

func TestCheckConstraintsMissingRequiredMember(t *testing.T) {
	sess := newTestSession(t)

	// u2 is busy Monday 09:00-12:00, so the attendee set lacks them.
	spec := models.ConstraintSpec{RequiredMembers: []string{"u2"}}
	v := sess.checkConstraints(mondayAt(9), 60, attendeeSet("u1", "u3"), spec)
	assert.Equal(t, []string{"u2"}, v.MissingRequired)
	assert.False(t, v.Empty())
}

func TestCheckConstraintsCollectsEveryViolation(t *testing.T) {
	sess := newTestSession(t)

	spec := models.ConstraintSpec{
		RequiredMembers: []string{"u9", "u2"},
		RequiredMentors: []string{"u3"},
		MinAttendees:    5,
		ClubFilter:      "drama",
	}
	v := sess.checkConstraints(mondayAt(9), 60, attendeeSet("u1"), spec)

	assert.Equal(t, []string{"u2", "u9"}, v.MissingRequired, "sorted for determinism")
	assert.Equal(t, []string{"u3"}, v.MissingMentors)
	assert.Equal(t, "need 5, have 1", v.MinAttendees)
	assert.NotEmpty(t, v.ClubFilter)
}

func TestCheckConstraintsAttendeeBounds(t *testing.T) {
	sess := newTestSession(t)

	v := sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1", "u2", "u3"),
		models.ConstraintSpec{MaxAttendees: 2})
	assert.Equal(t, "max 2, have 3", v.MaxAttendees)

	v = sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1", "u2", "u3"),
		models.ConstraintSpec{MinAttendees: 3, MaxAttendees: 3})
	assert.True(t, v.Empty())
}

func TestCheckConstraintsTimeRange(t *testing.T) {
	sess := newTestSession(t)
	spec := models.ConstraintSpec{EarliestHour: 9, LatestHour: 12}

	// 11:00-12:00 ends exactly at the bound.
	v := sess.checkConstraints(mondayAt(11), 60, attendeeSet("u1"), spec)
	assert.Empty(t, v.TimeRange)

	// A partial final hour rounds up: 11:00+90m reaches into hour 12.
	v = sess.checkConstraints(mondayAt(11), 90, attendeeSet("u1"), spec)
	assert.NotEmpty(t, v.TimeRange)

	v = sess.checkConstraints(mondayAt(8), 60, attendeeSet("u1"), spec)
	assert.NotEmpty(t, v.TimeRange)
}

func TestCheckConstraintsPreferredDays(t *testing.T) {
	sess := newTestSession(t)

	v := sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1"),
		models.ConstraintSpec{PreferredDays: []int{2, 4}})
	assert.NotEmpty(t, v.PreferredDays)

	v = sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1"),
		models.ConstraintSpec{PreferredDays: []int{0}})
	assert.Empty(t, v.PreferredDays)
}

func TestCheckConstraintsClubFilter(t *testing.T) {
	sess := newTestSession(t)

	v := sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1", "u3"),
		models.ConstraintSpec{ClubFilter: models.ClubGCC})
	assert.Empty(t, v.ClubFilter, "u3 belongs to the filtered club")

	v = sess.checkConstraints(mondayAt(10), 60, attendeeSet("u1"),
		models.ConstraintSpec{ClubFilter: models.ClubGCC})
	assert.NotEmpty(t, v.ClubFilter)
}

func TestHourWindowDefaults(t *testing.T) {
	earliest, latest := hourWindow(models.ConstraintSpec{})
	assert.Equal(t, WorkStartHour, earliest)
	assert.Equal(t, WorkEndHour, latest)

	earliest, latest = hourWindow(models.ConstraintSpec{EarliestHour: 10, LatestHour: 16})
	assert.Equal(t, 10, earliest)
	assert.Equal(t, 16, latest)
}

func TestValidateSearchRequestAppliesDefaults(t *testing.T) {
	req := SlotSearchRequest{}
	require.NoError(t, validateSearchRequest(&req))

	assert.Equal(t, DefaultDurationMinutes, req.DurationMinutes)
	assert.Equal(t, ObjectiveBalanced, req.Objective)
	assert.Equal(t, DefaultDaysAhead, req.DaysAhead)
	assert.Equal(t, DefaultTopN, req.TopN)
}

func TestValidateSearchRequestRejectsBadFields(t *testing.T) {
	tests := []struct {
		name  string
		req   SlotSearchRequest
		field string
	}{
		{"negative duration", SlotSearchRequest{DurationMinutes: -30}, "duration_minutes"},
		{"unknown objective", SlotSearchRequest{Objective: "fastest"}, "objective"},
		{"negative days ahead", SlotSearchRequest{DaysAhead: -1}, "days_ahead"},
		{"negative top n", SlotSearchRequest{TopN: -3}, "top_n"},
		{
			"min above max",
			SlotSearchRequest{Constraints: models.ConstraintSpec{MinAttendees: 5, MaxAttendees: 2}},
			"min_attendees",
		},
		{
			"inverted hour range",
			SlotSearchRequest{Constraints: models.ConstraintSpec{EarliestHour: 14, LatestHour: 10}},
			"earliest_hour",
		},
		{
			"day index out of range",
			SlotSearchRequest{Constraints: models.ConstraintSpec{PreferredDays: []int{7}}},
			"preferred_days",
		},
		{
			"negative min attendees",
			SlotSearchRequest{Constraints: models.ConstraintSpec{MinAttendees: -1}},
			"min_attendees",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSearchRequest(&tc.req)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
