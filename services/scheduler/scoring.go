package scheduler

import (
	"time"

	"clubsync/models"
)

// scoreSlot computes the desirability of a valid slot under one objective.
// Constraint-violating slots get the large negative sentinel so they sort
// below every valid candidate without special cases.
func (sess *searchSession) scoreSlot(
	slotStart time.Time,
	durationMinutes int,
	attendees map[string]struct{},
	est *attendanceEstimate,
	spec models.ConstraintSpec,
	objective string,
) float64 {
	if !sess.checkConstraints(slotStart, durationMinutes, attendees, spec).Empty() {
		return invalidSlotScore
	}

	expected := est.expectedCount
	avgProbability := 0.0
	if len(attendees) > 0 {
		avgProbability = expected / float64(len(attendees))
	}

	var score float64
	switch objective {
	case ObjectiveMaxAttendance:
		score += expected * weights["attendance_count"]
		score += avgProbability * weights["attendance_probability"]

	case ObjectiveMaxProbability:
		score += avgProbability * weights["attendance_probability"] * 2
		score += expected * weights["attendance_count"] * 0.5

	case ObjectiveFairness:
		// Low dispersion of individual probabilities scores high.
		if n := len(est.probabilities); n > 0 {
			mean := expected / float64(n)
			var variance float64
			for _, p := range est.probabilities {
				d := p - mean
				variance += d * d
			}
			variance /= float64(n)
			score += (1.0 / (1.0 + variance)) * weights["fairness"] * 100
		}

	case ObjectiveMentorPriority:
		mentorsAvailable := 0
		for id := range attendees {
			if u, ok := sess.universe[id]; ok && u.IsMentor {
				mentorsAvailable++
				score += est.probabilities[id] * weights["mentor_present"] * 50
			}
		}
		if mentorsAvailable > 0 {
			score += weights["mentor_present"] * 100
		}

	default: // balanced
		score += expected * weights["attendance_count"] * 10
		score += avgProbability * weights["attendance_probability"] * 20

		hour := slotStart.Hour()
		if hour >= 9 && hour <= 17 {
			score += weights["time_preference"] * 30
		}
		if hour >= 12 && hour < 14 {
			score -= 20 // lunch
		}

		switch day := weekdayIndex(slotStart); {
		case day < 4: // Mon-Thu
			score += weights["day_preference"] * 20
		case day == 4: // Friday
			score += weights["day_preference"] * 10
		}

		for id := range attendees {
			if u, ok := sess.universe[id]; ok && u.IsMentor {
				score += weights["mentor_present"] * 30
				break
			}
		}
	}

	// Cross-objective adjustments.
	if len(spec.RequiredMembers) > 0 {
		allPresent := true
		for _, id := range spec.RequiredMembers {
			if _, ok := attendees[id]; !ok {
				allPresent = false
				break
			}
		}
		if allPresent {
			score += weights["required_members"] * 50
		}
	}

	daysOut := int(slotStart.Sub(sess.anchorDate()).Hours() / 24)
	score -= float64(daysOut*2) * weights["recency"]

	return score
}
