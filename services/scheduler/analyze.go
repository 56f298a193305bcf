package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clubsync/models"
)

// LearnPattern derives one user's attendance pattern from booking history.
func (s *DefaultSchedulerService) LearnPattern(ctx context.Context, userID string) (*models.UserPattern, error) {
	if userID == "" {
		return nil, validationErr("user_id", "must not be empty")
	}
	sess, err := s.newSearchSession()
	if err != nil {
		return nil, err
	}
	return sess.learnPattern(userID)
}

// EstimateProbability estimates the user's attendance probability for one
// concrete slot time.
func (s *DefaultSchedulerService) EstimateProbability(ctx context.Context, userID string, slotTime time.Time) (float64, error) {
	if userID == "" {
		return 0, validationErr("user_id", "must not be empty")
	}
	sess, err := s.newSearchSession()
	if err != nil {
		return 0, err
	}
	return sess.estimateProbability(userID, slotTime)
}

// AnalyzeConstraints reports whether a constraint spec admits any slot and,
// when it does not, which constraint class is most likely binding.
func (s *DefaultSchedulerService) AnalyzeConstraints(ctx context.Context, constraints models.ConstraintSpec, daysAhead int) (*models.ConstraintAnalysis, error) {
	if daysAhead == 0 {
		daysAhead = DefaultDaysAhead
	}
	if daysAhead < 0 {
		return nil, validationErr("days_ahead", "must be positive, got %d", daysAhead)
	}
	if err := validateConstraintSpec(constraints); err != nil {
		return nil, err
	}

	sess, err := s.newSearchSession()
	if err != nil {
		return nil, err
	}

	req := SlotSearchRequest{
		DurationMinutes: DefaultDurationMinutes,
		Constraints:     constraints,
		Objective:       ObjectiveBalanced,
		DaysAhead:       daysAhead,
		TopN:            DefaultTopN,
	}
	candidates, err := sess.searchCandidates(req)
	if err != nil {
		return nil, err
	}

	analysis := &models.ConstraintAnalysis{
		Feasible:          len(candidates) > 0,
		FeasibleSlotCount: len(candidates),
	}

	if len(candidates) > 0 {
		sortCandidates(candidates)
		analysis.BestScore = candidates[0].Score
		if len(candidates) < 3 {
			analysis.Recommendations = append(analysis.Recommendations,
				"Limited options available. Consider extending days_ahead or relaxing constraints.")
		}
		return analysis, nil
	}

	analysis.Recommendations = append(analysis.Recommendations,
		"No feasible slots found. Consider relaxing constraints.")
	if binding := sess.bindingConstraint(req); binding != "" {
		analysis.Recommendations = append(analysis.Recommendations, binding)
	}
	return analysis, nil
}

// bindingConstraint re-enumerates the window tallying violations per
// constraint class and names the most frequent one.
func (sess *searchSession) bindingConstraint(req SlotSearchRequest) string {
	grid := sess.buildAvailabilityGrid(req.DaysAhead)
	duration := time.Duration(req.DurationMinutes) * time.Minute
	anchor := sess.anchorDate()

	tally := make(map[string]int)
	for i := 0; i < req.DaysAhead; i++ {
		date := anchor.AddDate(0, 0, i)
		for hour := WorkStartHour; hour < WorkEndHour; hour++ {
			start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
			end := start.Add(duration)
			if !grid.isContinuous(start, end) {
				continue
			}
			attendees := grid.availableForSlot(start, end)
			v := sess.checkConstraints(start, req.DurationMinutes, attendees, req.Constraints)
			if len(v.MissingRequired) > 0 {
				tally["required members unavailable"]++
			}
			if len(v.MissingMentors) > 0 {
				tally["required mentors unavailable"]++
			}
			if v.MinAttendees != "" {
				tally["min_attendees unmet"]++
			}
			if v.MaxAttendees != "" {
				tally["max_attendees exceeded"]++
			}
			if v.TimeRange != "" {
				tally["hour range too narrow"]++
			}
			if v.PreferredDays != "" {
				tally["preferred days too restrictive"]++
			}
			if v.ClubFilter != "" {
				tally["no club members available"]++
			}
		}
	}

	best, bestCount := "", 0
	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if tally[k] > bestCount {
			best, bestCount = k, tally[k]
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("Most binding constraint: %s (%d slots affected)", best, bestCount)
}

// GetBusyUsersForSlot explains who is busy and who is free across one slot.
func (s *DefaultSchedulerService) GetBusyUsersForSlot(ctx context.Context, slotTime time.Time, durationMinutes int) (*models.SlotOccupancy, error) {
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes < 0 {
		return nil, validationErr("duration_minutes", "must be positive, got %d", durationMinutes)
	}

	sess, err := s.newSearchSession()
	if err != nil {
		return nil, err
	}

	anchor := sess.anchorDate()
	slotDay := time.Date(slotTime.Year(), slotTime.Month(), slotTime.Day(), 0, 0, 0, 0, anchor.Location())
	offset := int(slotDay.Sub(anchor).Hours() / 24)
	if offset < 0 {
		return nil, validationErr("slot_time", "must not be in the past")
	}

	end := slotTime.Add(time.Duration(durationMinutes) * time.Minute)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, anchor.Location())
	endOffset := int(endDay.Sub(anchor).Hours()/24) + 1
	grid := sess.buildAvailabilityGrid(endOffset)

	busy := grid.busyForSlot(slotTime, end)
	available := grid.availableForSlot(slotTime, end)

	occ := &models.SlotOccupancy{
		StartTime: slotTime,
		EndTime:   end,
		Reasons:   make(map[string]string),
	}
	for id := range available {
		occ.AvailableUsers = append(occ.AvailableUsers, id)
	}
	sort.Strings(occ.AvailableUsers)
	for id := range busy {
		occ.BusyUsers = append(occ.BusyUsers, id)
		occ.Reasons[id] = sess.busyReason(id, slotTime, end)
	}
	sort.Strings(occ.BusyUsers)

	if !grid.isContinuous(slotTime, end) {
		occ.Reasons["_slot"] = "slot extends outside working hours; availability not computable for the full window"
	}
	return occ, nil
}

// busyReason names the first recurring rule that blocks the user in the slot.
func (sess *searchSession) busyReason(userID string, start, end time.Time) string {
	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		day := weekdayIndex(cur)
		for _, rule := range sess.rules {
			if rule.UserID != userID || !rule.Busy || rule.DayOfWeek != day {
				continue
			}
			if rule.StartHour <= cur.Hour() && cur.Hour() < rule.EndHour {
				return fmt.Sprintf("recurring busy %s %02d:00-%02d:00",
					cur.Weekday(), rule.StartHour, rule.EndHour)
			}
		}
	}
	return "busy during part of the slot"
}
