package scheduler

import (
	"context"
	"fmt"
	"time"

	"clubsync/models"

	"github.com/google/uuid"
)

// CreatePoll runs one search per objective with topN=1, deduplicates the
// winners by start time and backfills from a wider balanced search until
// three unique options exist or candidates run out.
func (s *DefaultSchedulerService) CreatePoll(ctx context.Context, req PollRequest) (*models.SmartPoll, error) {
	if req.Title == "" {
		req.Title = "Team Meeting"
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}
	objectives := req.Objectives
	if len(objectives) == 0 {
		objectives = DefaultPollObjectives
	}
	for _, objective := range objectives {
		if !isValidObjective(objective) {
			return nil, validationErr("objectives", "unknown objective %q, must be one of %v", objective, ValidObjectives)
		}
	}

	var options []models.CandidateSlot
	seen := make(map[time.Time]struct{})

	for _, objective := range objectives {
		slots, err := s.FindOptimalSlots(ctx, SlotSearchRequest{
			DurationMinutes: req.DurationMinutes,
			Constraints:     req.Constraints,
			Objective:       objective,
			TopN:            1,
		})
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}
		slot := slots[0]
		if _, dup := seen[slot.StartTime]; dup {
			continue
		}
		seen[slot.StartTime] = struct{}{}
		options = append(options, slot)
	}

	// Backfill with balanced candidates when objectives converged on the
	// same start times.
	if len(options) < 3 {
		extra, err := s.FindOptimalSlots(ctx, SlotSearchRequest{
			DurationMinutes: req.DurationMinutes,
			Constraints:     req.Constraints,
			Objective:       ObjectiveBalanced,
			TopN:            10,
		})
		if err != nil {
			return nil, err
		}
		for _, slot := range extra {
			if len(options) >= 3 {
				break
			}
			if _, dup := seen[slot.StartTime]; dup {
				continue
			}
			seen[slot.StartTime] = struct{}{}
			options = append(options, slot)
		}
	}

	if len(options) > 3 {
		options = options[:3]
	}

	return &models.SmartPoll{
		ID:              uuid.New().String(),
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       s.now(),
		Constraints:     req.Constraints,
		Options:         options,
		Recommendation:  buildRecommendation(options),
	}, nil
}

// buildRecommendation summarises the highest-priority option.
func buildRecommendation(options []models.CandidateSlot) string {
	if len(options) == 0 {
		return "No suitable slot found. Try again with relaxed constraints."
	}
	best := options[0]
	return fmt.Sprintf(
		"Recommended: %s (%s): expecting %.1f attendees, %d available, %d mentor(s), score %.2f",
		best.StartTime.Format("2006-01-02 15:04"),
		best.DayName,
		best.ExpectedAttendance,
		best.AvailableCount,
		best.MentorCount,
		best.Score,
	)
}
