package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync/models"
)

func TestCreatePollProducesThreeUniqueOptions(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	poll, err := svc.CreatePoll(context.Background(), PollRequest{Title: "Weekly Sync"})
	require.NoError(t, err)

	assert.NotEmpty(t, poll.ID)
	assert.Equal(t, "Weekly Sync", poll.Title)
	assert.Equal(t, DefaultDurationMinutes, poll.DurationMinutes)
	assert.Equal(t, testNow, poll.CreatedAt)

	require.Len(t, poll.Options, 3)
	seen := make(map[time.Time]struct{})
	for _, opt := range poll.Options {
		_, dup := seen[opt.StartTime]
		assert.False(t, dup, "duplicate start time %s", opt.StartTime)
		seen[opt.StartTime] = struct{}{}
	}

	// The first objective is max_attendance; with everyone free at 08:00
	// its winner is the earliest full-attendance slot.
	assert.Equal(t, mondayAt(8), poll.Options[0].StartTime)

	assert.True(t, strings.HasPrefix(poll.Recommendation, "Recommended: "))
	assert.Contains(t, poll.Recommendation, "2025-01-06 08:00")
	assert.Contains(t, poll.Recommendation, "Monday")
}

func TestCreatePollDefaults(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	poll, err := svc.CreatePoll(context.Background(), PollRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Team Meeting", poll.Title)
	assert.Equal(t, DefaultDurationMinutes, poll.DurationMinutes)
}

func TestCreatePollBackfillsConvergedObjectives(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	// A single objective can only produce one winner; the backfill still
	// brings the poll up to three options.
	poll, err := svc.CreatePoll(context.Background(), PollRequest{
		Objectives: []string{ObjectiveMaxAttendance},
	})
	require.NoError(t, err)
	assert.Len(t, poll.Options, 3)
}

func TestCreatePollRejectsUnknownObjective(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	_, err := svc.CreatePoll(context.Background(), PollRequest{
		Objectives: []string{"speed"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "objectives", verr.Field)
}

func TestCreatePollNoFeasibleSlots(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	poll, err := svc.CreatePoll(context.Background(), PollRequest{
		Constraints: models.ConstraintSpec{MinAttendees: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, poll.Options)
	assert.Contains(t, poll.Recommendation, "No suitable slot found")
}
