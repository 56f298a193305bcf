package scheduler

import (
	"context"
	"sort"
	"time"

	"clubsync/models"
	"clubsync/utils"

	"go.uber.org/zap"
)

// FindOptimalSlots enumerates every working-hour slot in the lookahead
// window, filters for continuity and constraint validity, scores the rest
// under the requested objective and returns the top N in deterministic
// order (score descending, earlier start on ties).
func (s *DefaultSchedulerService) FindOptimalSlots(ctx context.Context, req SlotSearchRequest) ([]models.CandidateSlot, error) {
	if err := validateSearchRequest(&req); err != nil {
		return nil, err
	}
	if req.UseAdvisor && s.Advisor == nil {
		return nil, validationErr("use_advisor", "no advisor configured")
	}

	sess, err := s.newSearchSession()
	if err != nil {
		return nil, err
	}

	candidates, err := sess.searchCandidates(req)
	if err != nil {
		return nil, err
	}

	sortCandidates(candidates)

	if req.UseAdvisor && len(candidates) > 0 {
		candidates = s.advisorRerank(ctx, sess, req, candidates)
	}

	if len(candidates) > req.TopN {
		candidates = candidates[:req.TopN]
	}

	utils.GetLogger().Debug("slot search complete",
		zap.String("objective", req.Objective),
		zap.Int("days_ahead", req.DaysAhead),
		zap.Int("returned", len(candidates)))

	return candidates, nil
}

// searchCandidates runs the enumeration over the session's grid.
func (sess *searchSession) searchCandidates(req SlotSearchRequest) ([]models.CandidateSlot, error) {
	grid := sess.buildAvailabilityGrid(req.DaysAhead)
	duration := time.Duration(req.DurationMinutes) * time.Minute
	earliestStart := sess.now.Add(MinNoticeHours * time.Hour)
	anchor := sess.anchorDate()

	var candidates []models.CandidateSlot

	for i := 0; i < req.DaysAhead; i++ {
		date := anchor.AddDate(0, 0, i)

		for hour := WorkStartHour; hour < WorkEndHour; hour++ {
			start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
			end := start.Add(duration)

			if start.Before(earliestStart) {
				continue
			}
			if !grid.isContinuous(start, end) {
				continue
			}

			attendees := grid.availableForSlot(start, end)
			if len(attendees) == 0 {
				continue
			}

			if !sess.checkConstraints(start, req.DurationMinutes, attendees, req.Constraints).Empty() {
				continue
			}

			est, err := sess.expectedAttendance(attendees, start)
			if err != nil {
				return nil, err
			}

			score := sess.scoreSlot(start, req.DurationMinutes, attendees, est, req.Constraints, req.Objective)
			candidates = append(candidates, sess.buildCandidate(start, end, attendees, est, score, req.Objective))
		}
	}

	return candidates, nil
}

// buildCandidate enriches a slot with per-attendee detail for presentation.
func (sess *searchSession) buildCandidate(
	start, end time.Time,
	attendees map[string]struct{},
	est *attendanceEstimate,
	score float64,
	objective string,
) models.CandidateSlot {
	ids := make([]string, 0, len(attendees))
	for id := range attendees {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	details := make([]models.AttendeeDetail, 0, len(ids))
	mentorCount := 0
	for _, id := range ids {
		u, ok := sess.universe[id]
		if !ok {
			continue
		}
		if u.IsMentor {
			mentorCount++
		}
		details = append(details, models.AttendeeDetail{
			UserID:                id,
			Username:              u.Username,
			Club:                  u.Club,
			IsMentor:              u.IsMentor,
			AttendanceProbability: est.probabilities[id],
		})
	}
	// Highest-probability attendees first; ID order breaks ties.
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].AttendanceProbability > details[j].AttendanceProbability
	})

	high := append([]string(nil), est.highProbUsers...)
	sort.Strings(high)

	return models.CandidateSlot{
		StartTime:            start,
		EndTime:              end,
		DayName:              start.Weekday().String(),
		Hour:                 start.Hour(),
		Score:                score,
		Objective:            objective,
		AvailableUsers:       ids,
		AvailableCount:       len(ids),
		ExpectedAttendance:   est.expectedCount,
		Probabilities:        est.probabilities,
		HighProbabilityUsers: high,
		MentorCount:          mentorCount,
		AttendeeDetails:      details,
	}
}

// sortCandidates applies the deterministic total order: score descending,
// chronological on equal scores.
func sortCandidates(candidates []models.CandidateSlot) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].StartTime.Before(candidates[j].StartTime)
	})
}
