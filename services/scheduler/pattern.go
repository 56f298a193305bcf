package scheduler

import (
	"time"

	"clubsync/models"
)

// learnPattern derives one user's attendance pattern from the session's
// confirmed-booking history, caching the result for the session's lifetime.
func (sess *searchSession) learnPattern(userID string) (*models.UserPattern, error) {
	if p, ok := sess.patterns[userID]; ok {
		return p, nil
	}

	rate, err := sess.attendanceRate(userID)
	if err != nil {
		return nil, err
	}

	bookings := sess.byUser[userID]
	if len(bookings) == 0 {
		p := defaultPattern(userID)
		p.AttendanceRate = rate
		sess.patterns[userID] = p
		return p, nil
	}

	hourCounts := make(map[int]int)
	dayCounts := make(map[int]int)
	for _, b := range bookings {
		hourCounts[b.StartTime.Hour()]++
		dayCounts[weekdayIndex(b.StartTime)]++
	}

	total := len(bookings)
	hourProb := make(map[int]float64, len(hourCounts))
	for h, c := range hourCounts {
		hourProb[h] = float64(c) / float64(total)
	}
	dayProb := make(map[int]float64, len(dayCounts))
	for d, c := range dayCounts {
		dayProb[d] = float64(c) / float64(total)
	}

	p := &models.UserPattern{
		UserID:             userID,
		TotalBookings:      total,
		PreferredHours:     hourCounts,
		PreferredDays:      dayCounts,
		HourProbability:    hourProb,
		DayProbability:     dayProb,
		TimeSlotPreference: categorizeTimePreference(hourCounts),
		MostActiveDay:      mostActiveDay(dayCounts),
		AttendanceRate:     rate,
	}
	sess.patterns[userID] = p
	return p, nil
}

// defaultPattern is assumed for users with no confirmed bookings in the
// lookback window.
func defaultPattern(userID string) *models.UserPattern {
	return &models.UserPattern{
		UserID:             userID,
		PreferredHours:     map[int]int{},
		PreferredDays:      map[int]int{},
		HourProbability:    map[int]float64{},
		DayProbability:     map[int]float64{},
		TimeSlotPreference: models.PreferenceAfternoon,
		MostActiveDay:      2, // Wednesday
		AttendanceRate:     defaultAttendanceRate,
	}
}

// attendanceRate is confirmed-over-total across the user's entire history,
// defaulting when the user has never booked anything.
func (sess *searchSession) attendanceRate(userID string) (float64, error) {
	counts, err := sess.bookingCounts(userID)
	if err != nil {
		return 0, err
	}
	if counts.Total == 0 {
		return defaultAttendanceRate, nil
	}
	return float64(counts.Confirmed) / float64(counts.Total), nil
}

// categorizeTimePreference buckets booked hours into morning [7,12),
// afternoon [12,18) and evening [18,22). Evaluation order makes morning win
// ties with afternoon, and afternoon win ties with evening.
func categorizeTimePreference(hourCounts map[int]int) string {
	var morning, afternoon, evening int
	for hour, count := range hourCounts {
		switch {
		case hour >= 7 && hour < 12:
			morning += count
		case hour >= 12 && hour < 18:
			afternoon += count
		case hour >= 18 && hour < 22:
			evening += count
		}
	}

	max := morning
	if afternoon > max {
		max = afternoon
	}
	if evening > max {
		max = evening
	}
	if max == 0 {
		return models.PreferenceAfternoon
	}
	if morning == max {
		return models.PreferenceMorning
	}
	if afternoon == max {
		return models.PreferenceAfternoon
	}
	return models.PreferenceEvening
}

// mostActiveDay is the day index with the highest booking count, preferring
// the earlier day on a tie for determinism. Wednesday when nothing observed.
func mostActiveDay(dayCounts map[int]int) int {
	best, bestCount := 2, 0
	for d := 0; d < 7; d++ {
		if c := dayCounts[d]; c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

// estimateProbability blends overall attendance rate with hour and day
// preference, clamped to [0,1]. Hours/days with no observations contribute
// the neutral 0.5.
func (sess *searchSession) estimateProbability(userID string, slotTime time.Time) (float64, error) {
	p, err := sess.learnPattern(userID)
	if err != nil {
		return 0, err
	}

	hourProb, ok := p.HourProbability[slotTime.Hour()]
	if !ok {
		hourProb = neutralProbability
	}
	dayProb, ok := p.DayProbability[weekdayIndex(slotTime)]
	if !ok {
		dayProb = neutralProbability
	}

	combined := p.AttendanceRate*0.4 + hourProb*0.3 + dayProb*0.3
	if combined < 0 {
		combined = 0
	}
	if combined > 1 {
		combined = 1
	}
	return combined, nil
}

// attendanceEstimate holds the per-slot expectation diagnostics.
type attendanceEstimate struct {
	expectedCount float64
	probabilities map[string]float64
	highProbUsers []string
}

// expectedAttendance sums per-user probabilities across the attendee set.
func (sess *searchSession) expectedAttendance(userIDs map[string]struct{}, slotTime time.Time) (*attendanceEstimate, error) {
	probs := make(map[string]float64, len(userIDs))
	var expected float64
	var high []string

	for id := range userIDs {
		p, err := sess.estimateProbability(id, slotTime)
		if err != nil {
			return nil, err
		}
		probs[id] = p
		expected += p
		if p > highProbabilityThreshold {
			high = append(high, id)
		}
	}

	return &attendanceEstimate{
		expectedCount: expected,
		probabilities: probs,
		highProbUsers: high,
	}, nil
}
