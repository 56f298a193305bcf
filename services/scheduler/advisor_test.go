package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsync/models"
)

// stubAdvisor records the last request and replies with a canned response.
type stubAdvisor struct {
	resp    *models.AdvisorResponse
	err     error
	lastReq *models.AdvisorRequest
	calls   int
}

func (a *stubAdvisor) ScoreSlots(ctx context.Context, req *models.AdvisorRequest) (*models.AdvisorResponse, error) {
	a.lastReq = req
	a.calls++
	return a.resp, a.err
}

func TestAdvisorRerankReordersByAdvisorScore(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)

	// Promote the locally last-ranked candidate (index 13, Monday 11:00)
	// above everything else.
	advisor := &stubAdvisor{resp: &models.AdvisorResponse{
		Slots: []models.AdvisorSlotScore{
			{Index: 13, Score: 95, Reasoning: "smallest conflict surface"},
			{Index: 0, Score: 40, Reasoning: "too early"},
		},
	}}
	svc.Advisor = advisor

	slots, err := svc.FindOptimalSlots(context.Background(), SlotSearchRequest{
		Objective:  ObjectiveMaxAttendance,
		DaysAhead:  1,
		TopN:       50,
		UseAdvisor: true,
	})
	require.NoError(t, err)
	require.Len(t, slots, 14)
	assert.Equal(t, 1, advisor.calls, "advisor consulted at most once per search")

	assert.Equal(t, mondayAt(11), slots[0].StartTime)
	assert.Equal(t, 95, slots[0].AdvisorScore)
	assert.Equal(t, "smallest conflict surface", slots[0].Reasoning)

	// Unscored indices fall back to 50 and keep chronological order among
	// themselves; the explicitly down-scored 08:00 slot drops below them.
	assert.Equal(t, 50, slots[1].AdvisorScore)
	last := slots[len(slots)-1]
	assert.Equal(t, mondayAt(8), last.StartTime)
	assert.Equal(t, 40, last.AdvisorScore)
}

func TestAdvisorRerankSurvivesAdvisorFailure(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)
	svc.Advisor = &stubAdvisor{err: errors.New("deadline exceeded")}

	slots, err := svc.FindOptimalSlots(context.Background(), SlotSearchRequest{
		Objective:  ObjectiveMaxAttendance,
		DaysAhead:  1,
		TopN:       50,
		UseAdvisor: true,
	})
	require.NoError(t, err, "advisor failure must never fail the search")
	require.Len(t, slots, 14)

	// Everything gets the neutral fallback, leaving pure chronological order.
	for i, slot := range slots {
		assert.Equal(t, advisorFallbackScore, slot.AdvisorScore)
		assert.NotEmpty(t, slot.Reasoning)
		if i > 0 {
			assert.True(t, slots[i-1].StartTime.Before(slot.StartTime))
		}
	}
}

func TestAdvisorRerankBoundsSubmissionAndSamples(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)
	advisor := &stubAdvisor{resp: &models.AdvisorResponse{
		Slots: []models.AdvisorSlotScore{{Index: 0, Score: 80, Reasoning: "ok"}},
	}}
	svc.Advisor = advisor

	// Two days yield 29 candidates, beyond the submission bound of 20.
	slots, err := svc.FindOptimalSlots(context.Background(), SlotSearchRequest{
		Objective:  ObjectiveMaxAttendance,
		DaysAhead:  2,
		TopN:       50,
		UseAdvisor: true,
	})
	require.NoError(t, err)
	require.Len(t, slots, 29)

	require.NotNil(t, advisor.lastReq)
	assert.Len(t, advisor.lastReq.Candidates, maxAdvisorCandidates)
	assert.Equal(t, ObjectiveMaxAttendance, advisor.lastReq.Objective)
	for i, c := range advisor.lastReq.Candidates {
		assert.Equal(t, i, c.Index)
		assert.LessOrEqual(t, len(c.SampleAttendees), maxAdvisorSampleAttendees)
	}

	// Candidates past the bound carry the attendee-count fallback.
	countFallbacks := 0
	for _, slot := range slots {
		if slot.Reasoning == "local fallback: not submitted to advisor" {
			countFallbacks++
			assert.Equal(t, countFallbackScore(slot.AvailableCount), slot.AdvisorScore)
		}
	}
	assert.Equal(t, 29-maxAdvisorCandidates, countFallbacks)
}

func TestAdvisorRerankIgnoresOutOfRangeIndices(t *testing.T) {
	users, rules := threeUsers()
	svc := newTestService(users, rules, nil)
	svc.Advisor = &stubAdvisor{resp: &models.AdvisorResponse{
		Slots: []models.AdvisorSlotScore{
			{Index: -1, Score: 99},
			{Index: 99, Score: 99},
		},
	}}

	slots, err := svc.FindOptimalSlots(context.Background(), SlotSearchRequest{
		Objective:  ObjectiveMaxAttendance,
		DaysAhead:  1,
		TopN:       50,
		UseAdvisor: true,
	})
	require.NoError(t, err)
	for _, slot := range slots {
		assert.Equal(t, advisorFallbackScore, slot.AdvisorScore)
	}
}

func TestCountFallbackScoreCaps(t *testing.T) {
	assert.Equal(t, 0, countFallbackScore(0))
	assert.Equal(t, 30, countFallbackScore(3))
	assert.Equal(t, 100, countFallbackScore(10))
	assert.Equal(t, 100, countFallbackScore(50))
}
