package scheduler

import (
	"fmt"
	"sort"
	"time"

	"clubsync/models"
)

// hourWindow resolves the spec's allowed hour range, defaulting unset
// bounds to working hours.
func hourWindow(spec models.ConstraintSpec) (earliest, latest int) {
	earliest, latest = spec.EarliestHour, spec.LatestHour
	if earliest <= 0 {
		earliest = WorkStartHour
	}
	if latest <= 0 {
		latest = WorkEndHour
	}
	return earliest, latest
}

// checkConstraints evaluates every constraint independently and collects
// all violations; nothing short-circuits so diagnostics can explain every
// reason a slot was excluded.
func (sess *searchSession) checkConstraints(
	slotStart time.Time,
	durationMinutes int,
	attendees map[string]struct{},
	spec models.ConstraintSpec,
) models.SlotViolations {
	var v models.SlotViolations

	for _, id := range spec.RequiredMembers {
		if _, ok := attendees[id]; !ok {
			v.MissingRequired = append(v.MissingRequired, id)
		}
	}
	sort.Strings(v.MissingRequired)

	for _, id := range spec.RequiredMentors {
		if _, ok := attendees[id]; !ok {
			v.MissingMentors = append(v.MissingMentors, id)
		}
	}
	sort.Strings(v.MissingMentors)

	if len(attendees) < spec.MinAttendees {
		v.MinAttendees = fmt.Sprintf("need %d, have %d", spec.MinAttendees, len(attendees))
	}
	if spec.MaxAttendees > 0 && len(attendees) > spec.MaxAttendees {
		v.MaxAttendees = fmt.Sprintf("max %d, have %d", spec.MaxAttendees, len(attendees))
	}

	earliest, latest := hourWindow(spec)
	startHour := slotStart.Hour()
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
	endHour := slotEnd.Hour()
	if slotEnd.Minute() > 0 || slotEnd.Second() > 0 {
		endHour++ // round a partial final hour up
	}
	if startHour < earliest || startHour >= latest || endHour > latest {
		v.TimeRange = fmt.Sprintf("slot %02d:00-%02d:00 outside allowed range %d-%d",
			startHour, endHour, earliest, latest)
	}

	if len(spec.PreferredDays) > 0 {
		day := weekdayIndex(slotStart)
		found := false
		for _, d := range spec.PreferredDays {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			v.PreferredDays = fmt.Sprintf("day %d not in preferred days %v", day, spec.PreferredDays)
		}
	}

	if spec.ClubFilter != "" {
		hasMember := false
		for id := range attendees {
			if u, ok := sess.universe[id]; ok && u.Club == spec.ClubFilter {
				hasMember = true
				break
			}
		}
		if !hasMember {
			v.ClubFilter = fmt.Sprintf("no available members from club %s", spec.ClubFilter)
		}
	}

	return v
}

// validateSearchRequest rejects malformed requests before any search work,
// naming the first invalid field.
func validateSearchRequest(req *SlotSearchRequest) error {
	if req.DurationMinutes == 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}
	if req.DurationMinutes < 0 {
		return validationErr("duration_minutes", "must be positive, got %d", req.DurationMinutes)
	}
	if req.Objective == "" {
		req.Objective = ObjectiveBalanced
	}
	if !isValidObjective(req.Objective) {
		return validationErr("objective", "unknown objective %q, must be one of %v", req.Objective, ValidObjectives)
	}
	if req.DaysAhead == 0 {
		req.DaysAhead = DefaultDaysAhead
	}
	if req.DaysAhead < 0 {
		return validationErr("days_ahead", "must be positive, got %d", req.DaysAhead)
	}
	if req.TopN == 0 {
		req.TopN = DefaultTopN
	}
	if req.TopN < 0 {
		return validationErr("top_n", "must be positive, got %d", req.TopN)
	}
	return validateConstraintSpec(req.Constraints)
}

func validateConstraintSpec(spec models.ConstraintSpec) error {
	if spec.MinAttendees < 0 {
		return validationErr("min_attendees", "must not be negative, got %d", spec.MinAttendees)
	}
	if spec.MaxAttendees < 0 {
		return validationErr("max_attendees", "must not be negative, got %d", spec.MaxAttendees)
	}
	if spec.MaxAttendees > 0 && spec.MinAttendees > spec.MaxAttendees {
		return validationErr("min_attendees", "exceeds max_attendees (%d > %d)", spec.MinAttendees, spec.MaxAttendees)
	}
	if spec.EarliestHour < 0 || spec.EarliestHour > 23 {
		return validationErr("earliest_hour", "must be in [0,23], got %d", spec.EarliestHour)
	}
	if spec.LatestHour < 0 || spec.LatestHour > 24 {
		return validationErr("latest_hour", "must be in [0,24], got %d", spec.LatestHour)
	}
	if spec.LatestHour > 0 && spec.EarliestHour >= spec.LatestHour {
		return validationErr("earliest_hour", "must be before latest_hour (%d >= %d)", spec.EarliestHour, spec.LatestHour)
	}
	for _, d := range spec.PreferredDays {
		if d < 0 || d > 6 {
			return validationErr("preferred_days", "day index %d out of range [0,6]", d)
		}
	}
	return nil
}
