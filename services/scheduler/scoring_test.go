package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync/models"
)

func scoreAt(t *testing.T, sess *searchSession, start time.Time, attendees map[string]struct{}, spec models.ConstraintSpec, objective string) float64 {
	t.Helper()
	est, err := sess.expectedAttendance(attendees, start)
	require.NoError(t, err)
	return sess.scoreSlot(start, 60, attendees, est, spec, objective)
}

func TestScoreSlotInvalidSentinel(t *testing.T) {
	sess := newTestSession(t)

	spec := models.ConstraintSpec{MinAttendees: 5}
	got := scoreAt(t, sess, mondayAt(10), attendeeSet("u1", "u2"), spec, ObjectiveBalanced)
	assert.Equal(t, invalidSlotScore, got)
}

func TestScoreSlotMaxAttendance(t *testing.T) {
	sess := newTestSession(t)

	// Every user sits at the 0.58 default probability, so expected
	// attendance is 1.74 and the score is 1.74*3.0 + 0.58*2.5.
	got := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u2", "u3"), models.ConstraintSpec{}, ObjectiveMaxAttendance)
	assert.InDelta(t, 6.67, got, 1e-6)

	smaller := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u3"), models.ConstraintSpec{}, ObjectiveMaxAttendance)
	assert.Less(t, smaller, got, "more attendees must score higher")
}

func TestScoreSlotMaxProbability(t *testing.T) {
	sess := newTestSession(t)

	// 0.58*2.5*2 + 1.74*3.0*0.5.
	got := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u2", "u3"), models.ConstraintSpec{}, ObjectiveMaxProbability)
	assert.InDelta(t, 5.51, got, 1e-6)
}

func TestScoreSlotFairnessRewardsUniformProbabilities(t *testing.T) {
	sess := newTestSession(t)

	// Identical probabilities give zero variance and the full 200.
	got := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u2", "u3"), models.ConstraintSpec{}, ObjectiveFairness)
	assert.InDelta(t, 200.0, got, 1e-6)
}

func TestScoreSlotMentorPriority(t *testing.T) {
	sess := newTestSession(t)

	// u3 is the only mentor: 0.58*2.5*50 per mentor plus the 250 presence bonus.
	withMentor := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u3"), models.ConstraintSpec{}, ObjectiveMentorPriority)
	assert.InDelta(t, 322.5, withMentor, 1e-6)

	withoutMentor := scoreAt(t, sess, mondayAt(8), attendeeSet("u1", "u2"), models.ConstraintSpec{}, ObjectiveMentorPriority)
	assert.InDelta(t, 0.0, withoutMentor, 1e-6)
	assert.Greater(t, withMentor, withoutMentor)
}

func TestScoreSlotBalancedHourAndDayShaping(t *testing.T) {
	sess := newTestSession(t)
	all := attendeeSet("u1", "u2", "u3")

	business := scoreAt(t, sess, mondayAt(10), all, models.ConstraintSpec{}, ObjectiveBalanced)
	lunch := scoreAt(t, sess, mondayAt(12), all, models.ConstraintSpec{}, ObjectiveBalanced)
	evening := scoreAt(t, sess, mondayAt(19), all, models.ConstraintSpec{}, ObjectiveBalanced)
	assert.Greater(t, business, lunch, "lunch hours are penalised")
	assert.Greater(t, business, evening, "business hours get the preference bonus")

	saturday := scoreAt(t, sess, mondayAt(10).AddDate(0, 0, 5), all, models.ConstraintSpec{}, ObjectiveBalanced)
	assert.Greater(t, business, saturday, "weekdays beat weekends")
}

func TestScoreSlotRequiredMembersBonus(t *testing.T) {
	sess := newTestSession(t)
	all := attendeeSet("u1", "u2", "u3")

	base := scoreAt(t, sess, mondayAt(8), all, models.ConstraintSpec{}, ObjectiveMaxAttendance)
	withBonus := scoreAt(t, sess, mondayAt(8), all,
		models.ConstraintSpec{RequiredMembers: []string{"u1"}}, ObjectiveMaxAttendance)
	assert.InDelta(t, 250.0, withBonus-base, 1e-6, "all required members present earns the flat bonus")
}

func TestScoreSlotRecencyPenalty(t *testing.T) {
	sess := newTestSession(t)
	all := attendeeSet("u1", "u2", "u3")

	today := scoreAt(t, sess, mondayAt(8), all, models.ConstraintSpec{}, ObjectiveMaxAttendance)
	nextWeek := scoreAt(t, sess, mondayAt(8).AddDate(0, 0, 7), all, models.ConstraintSpec{}, ObjectiveMaxAttendance)
	assert.InDelta(t, 14.0, today-nextWeek, 1e-6, "each day out costs 2 points")
}

func TestScoreSlotDeterministic(t *testing.T) {
	sess := newTestSession(t)
	all := attendeeSet("u1", "u2", "u3")

	first := scoreAt(t, sess, mondayAt(15), all, models.ConstraintSpec{}, ObjectiveBalanced)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scoreAt(t, sess, mondayAt(15), all, models.ConstraintSpec{}, ObjectiveBalanced))
	}
}
