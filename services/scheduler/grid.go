package scheduler

import (
	"time"
)

const gridDateLayout = "2006-01-02"

// gridCell is one (date, hour) cell of the availability grid. The cell
// invariant holds at construction: available = universe - busy, and the two
// sets never intersect.
type gridCell struct {
	busyUsers      map[string]struct{}
	availableUsers map[string]struct{}
	totalUsers     int
}

// availabilityGrid is an explicit two-level lookup: date string -> hour ->
// cell. Cells exist only for working hours inside the lookahead window;
// reading a missing cell means "not computable", not "empty".
type availabilityGrid map[string]map[int]*gridCell

// cell returns the cell for (t's date, t's hour) if it exists.
func (g availabilityGrid) cell(t time.Time) (*gridCell, bool) {
	day, ok := g[t.Format(gridDateLayout)]
	if !ok {
		return nil, false
	}
	c, ok := day[t.Hour()]
	return c, ok
}

// buildAvailabilityGrid derives per-day, per-hour busy/available user sets
// from the recurring weekly rules. Pure function of its inputs.
func (sess *searchSession) buildAvailabilityGrid(daysAhead int) availabilityGrid {
	grid := make(availabilityGrid, daysAhead)
	anchor := sess.anchorDate()

	for i := 0; i < daysAhead; i++ {
		date := anchor.AddDate(0, 0, i)
		dateStr := date.Format(gridDateLayout)
		dayOfWeek := weekdayIndex(date)

		day := make(map[int]*gridCell, WorkEndHour-WorkStartHour)
		for hour := WorkStartHour; hour < WorkEndHour; hour++ {
			busy := make(map[string]struct{})
			for _, rule := range sess.rules {
				if rule.DayOfWeek != dayOfWeek || !rule.Busy {
					continue
				}
				if rule.StartHour <= hour && hour < rule.EndHour {
					busy[rule.UserID] = struct{}{}
				}
			}

			available := make(map[string]struct{}, len(sess.userIDs))
			for id := range sess.userIDs {
				if _, isBusy := busy[id]; !isBusy {
					available[id] = struct{}{}
				}
			}

			day[hour] = &gridCell{
				busyUsers:      busy,
				availableUsers: available,
				totalUsers:     len(sess.userIDs),
			}
		}
		grid[dateStr] = day
	}

	return grid
}

// isContinuous reports whether every hourly cell covering [start, end)
// exists in the grid. Any gap makes the slot infeasible.
func (g availabilityGrid) isContinuous(start, end time.Time) bool {
	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		if cur.Hour() >= WorkEndHour || cur.Hour() < WorkStartHour {
			return false
		}
		if _, ok := g.cell(cur); !ok {
			return false
		}
	}
	return true
}

// availableForSlot intersects the available sets of every hourly cell
// covering [start, end). An empty covering set yields an empty attendee set.
func (g availabilityGrid) availableForSlot(start, end time.Time) map[string]struct{} {
	var attendees map[string]struct{}

	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		c, ok := g.cell(cur)
		if !ok {
			continue
		}
		if attendees == nil {
			attendees = make(map[string]struct{}, len(c.availableUsers))
			for id := range c.availableUsers {
				attendees[id] = struct{}{}
			}
			continue
		}
		for id := range attendees {
			if _, stillFree := c.availableUsers[id]; !stillFree {
				delete(attendees, id)
			}
		}
	}

	if attendees == nil {
		return map[string]struct{}{}
	}
	return attendees
}

// busyForSlot unions the busy sets of every covered hourly cell.
func (g availabilityGrid) busyForSlot(start, end time.Time) map[string]struct{} {
	busy := make(map[string]struct{})
	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		c, ok := g.cell(cur)
		if !ok {
			continue
		}
		for id := range c.busyUsers {
			busy[id] = struct{}{}
		}
	}
	return busy
}
