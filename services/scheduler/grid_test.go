package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAvailabilityGridCellInvariants(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	sess, err := svc.newSearchSession()
	require.NoError(t, err)

	grid := sess.buildAvailabilityGrid(3)
	require.Len(t, grid, 3)

	for dateStr, day := range grid {
		require.Len(t, day, WorkEndHour-WorkStartHour, "day %s", dateStr)
		for hour, cell := range day {
			assert.GreaterOrEqual(t, hour, WorkStartHour)
			assert.Less(t, hour, WorkEndHour)
			assert.Equal(t, len(users), cell.totalUsers)

			// busy and available partition the universe.
			assert.Equal(t, len(users), len(cell.busyUsers)+len(cell.availableUsers))
			for id := range cell.busyUsers {
				_, overlap := cell.availableUsers[id]
				assert.False(t, overlap, "user %s both busy and available at %s %02d", id, dateStr, hour)
			}
		}
	}
}

func TestBuildAvailabilityGridAppliesRecurringRule(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	sess, err := svc.newSearchSession()
	require.NoError(t, err)
	grid := sess.buildAvailabilityGrid(1)

	// u2 is busy Monday 09:00-12:00; the rule is half-open so hour 12 is free.
	for _, hour := range []int{9, 10, 11} {
		cell, ok := grid.cell(mondayAt(hour))
		require.True(t, ok)
		assert.Contains(t, cell.busyUsers, "u2")
		assert.NotContains(t, cell.availableUsers, "u2")
	}
	for _, hour := range []int{8, 12} {
		cell, ok := grid.cell(mondayAt(hour))
		require.True(t, ok)
		assert.Empty(t, cell.busyUsers)
		assert.Len(t, cell.availableUsers, 3)
	}
}

func TestGridCellMissingOutsideWindow(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	sess, err := svc.newSearchSession()
	require.NoError(t, err)
	grid := sess.buildAvailabilityGrid(1)

	_, ok := grid.cell(mondayAt(6))
	assert.False(t, ok, "before working hours")
	_, ok = grid.cell(mondayAt(22))
	assert.False(t, ok, "after working hours")
	_, ok = grid.cell(mondayAt(10).AddDate(0, 0, 1))
	assert.False(t, ok, "beyond lookahead window")
}

func TestGridContinuity(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	sess, err := svc.newSearchSession()
	require.NoError(t, err)
	grid := sess.buildAvailabilityGrid(1)

	assert.True(t, grid.isContinuous(mondayAt(21), mondayAt(21).Add(time.Hour)))
	assert.False(t, grid.isContinuous(mondayAt(21), mondayAt(21).Add(2*time.Hour)),
		"slot crossing the end of working hours must be infeasible")
	assert.False(t, grid.isContinuous(mondayAt(10).AddDate(0, 0, 1), mondayAt(11).AddDate(0, 0, 1)),
		"slot beyond the window must be infeasible")
}

func TestAvailableForSlotIntersectsCoveredHours(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	sess, err := svc.newSearchSession()
	require.NoError(t, err)
	grid := sess.buildAvailabilityGrid(1)

	// 08:00-10:00 covers a free hour and a busy hour for u2; the
	// intersection drops them.
	attendees := grid.availableForSlot(mondayAt(8), mondayAt(10))
	assert.Len(t, attendees, 2)
	assert.Contains(t, attendees, "u1")
	assert.Contains(t, attendees, "u3")

	busy := grid.busyForSlot(mondayAt(8), mondayAt(10))
	assert.Len(t, busy, 1)
	assert.Contains(t, busy, "u2")

	// Fully free window keeps everyone.
	attendees = grid.availableForSlot(mondayAt(14), mondayAt(15))
	assert.Len(t, attendees, 3)
}
