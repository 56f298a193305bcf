package scheduler

// Working hours bound the availability grid: cells exist only for hours in
// [WorkStartHour, WorkEndHour). Absence of a cell means "not computable",
// never "everyone available".
const (
	WorkStartHour = 7
	WorkEndHour   = 22
)

// Engine defaults.
const (
	DefaultDaysAhead       = 14
	DefaultLookbackDays    = 90
	DefaultTopN            = 3
	DefaultDurationMinutes = 60
	MinNoticeHours         = 2

	// invalidSlotScore excludes constraint-violating slots from any ranking
	// without special-casing the sort.
	invalidSlotScore = -1000.0

	// defaultAttendanceRate is assumed for users with no booking history.
	defaultAttendanceRate = 0.7
	// neutralProbability is used for hours/days with no observed bookings.
	neutralProbability = 0.5
	// highProbabilityThreshold marks users likely enough to headline a slot.
	highProbabilityThreshold = 0.7
)

// Advisor integration bounds.
const (
	maxAdvisorCandidates      = 20
	maxAdvisorSampleAttendees = 10
	advisorFallbackScore      = 50
)

// Scoring weight table shared by every objective.
var weights = map[string]float64{
	"attendance_count":       3.0,
	"attendance_probability": 2.5,
	"fairness":               2.0,
	"mentor_present":         2.5,
	"required_members":       5.0,
	"time_preference":        1.5,
	"recency":                1.0,
	"day_preference":         1.2,
}

// Objectives select which weighted factors dominate a slot's score.
const (
	ObjectiveMaxAttendance  = "max_attendance"
	ObjectiveMaxProbability = "max_probability"
	ObjectiveFairness       = "fairness"
	ObjectiveMentorPriority = "mentor_priority"
	ObjectiveBalanced       = "balanced"
)

// ValidObjectives lists every recognised objective name.
var ValidObjectives = []string{
	ObjectiveMaxAttendance,
	ObjectiveMaxProbability,
	ObjectiveFairness,
	ObjectiveMentorPriority,
	ObjectiveBalanced,
}

// DefaultPollObjectives drive the three-way smart poll.
var DefaultPollObjectives = []string{
	ObjectiveMaxAttendance,
	ObjectiveBalanced,
	ObjectiveMentorPriority,
}

func isValidObjective(objective string) bool {
	for _, o := range ValidObjectives {
		if o == objective {
			return true
		}
	}
	return false
}
