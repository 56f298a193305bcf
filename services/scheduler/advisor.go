package scheduler

import (
	"context"
	"sort"

	"clubsync/models"
	"clubsync/utils"

	"go.uber.org/zap"
)

// advisorRerank submits the locally pre-sorted top-K candidates for
// external re-scoring and re-sorts by the combined score set. The advisor
// is consulted at most once per search and can never fail it: any timeout,
// transport error, malformed reply or omitted index falls back to a
// deterministic local score.
func (s *DefaultSchedulerService) advisorRerank(
	ctx context.Context,
	sess *searchSession,
	req SlotSearchRequest,
	candidates []models.CandidateSlot,
) []models.CandidateSlot {
	logger := utils.GetLogger()

	k := len(candidates)
	if k > maxAdvisorCandidates {
		k = maxAdvisorCandidates
	}

	advReq := &models.AdvisorRequest{
		Objective:   req.Objective,
		Constraints: req.Constraints,
		Weights:     weights,
		Candidates:  make([]models.AdvisorCandidate, 0, k),
	}
	for i := 0; i < k; i++ {
		advReq.Candidates = append(advReq.Candidates, sess.advisorCandidate(i, &candidates[i]))
	}

	scored := make(map[int]models.AdvisorSlotScore)
	resp, err := s.Advisor.ScoreSlots(ctx, advReq)
	if err != nil {
		logger.Warn("advisor call failed, using local fallback scores", zap.Error(err))
	} else {
		for _, slot := range resp.Slots {
			if slot.Index >= 0 && slot.Index < k {
				scored[slot.Index] = slot
			}
		}
	}

	for i := range candidates {
		if i < k {
			if slot, ok := scored[i]; ok {
				candidates[i].AdvisorScore = slot.Score
				candidates[i].Reasoning = slot.Reasoning
				continue
			}
			candidates[i].AdvisorScore = advisorFallbackScore
			candidates[i].Reasoning = "local fallback: advisor did not score this slot"
			continue
		}
		// Candidates beyond the submission bound get the count-based score.
		candidates[i].AdvisorScore = countFallbackScore(candidates[i].AvailableCount)
		candidates[i].Reasoning = "local fallback: not submitted to advisor"
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AdvisorScore != candidates[j].AdvisorScore {
			return candidates[i].AdvisorScore > candidates[j].AdvisorScore
		}
		return candidates[i].StartTime.Before(candidates[j].StartTime)
	})
	return candidates
}

// advisorCandidate builds the compact submission summary with a capped
// sample of anonymised attendee profiles.
func (sess *searchSession) advisorCandidate(index int, c *models.CandidateSlot) models.AdvisorCandidate {
	sample := make([]models.AdvisorAttendee, 0, maxAdvisorSampleAttendees)
	for _, d := range c.AttendeeDetails {
		if len(sample) >= maxAdvisorSampleAttendees {
			break
		}
		var total int
		var rate float64
		if p, err := sess.learnPattern(d.UserID); err == nil {
			total = p.TotalBookings
			rate = p.AttendanceRate
		}
		sample = append(sample, models.AdvisorAttendee{
			Club:           d.Club,
			IsMentor:       d.IsMentor,
			TotalBookings:  total,
			AttendanceRate: rate,
		})
	}

	return models.AdvisorCandidate{
		Index:           index,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		AvailableCount:  c.AvailableCount,
		SampleAttendees: sample,
	}
}

func countFallbackScore(availableCount int) int {
	score := availableCount * 10
	if score > 100 {
		score = 100
	}
	return score
}
