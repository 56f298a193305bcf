// models/advisor.go
package models

import "time"

// AdvisorAttendee is the capped attendee profile included with a candidate
// submitted for external re-scoring. It intentionally omits identifiers.
type AdvisorAttendee struct {
	Club           string  `json:"club"`
	IsMentor       bool    `json:"is_mentor"`
	TotalBookings  int     `json:"total_bookings"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// AdvisorCandidate is one locally pre-ranked slot offered to the advisor.
type AdvisorCandidate struct {
	Index           int               `json:"index"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	AvailableCount  int               `json:"available_count"`
	SampleAttendees []AdvisorAttendee `json:"sample_attendees"`
}

// AdvisorRequest is the full re-scoring request payload.
type AdvisorRequest struct {
	Objective   string             `json:"objective"`
	Constraints ConstraintSpec     `json:"constraints"`
	Weights     map[string]float64 `json:"weights"`
	Candidates  []AdvisorCandidate `json:"candidates"`
}

// AdvisorSlotScore is the advisor's verdict for one submitted index.
// Score is an integer in [0,100].
type AdvisorSlotScore struct {
	Index     int    `json:"index"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// AdvisorResponse must echo every submitted index; the engine falls back to
// local scores for any index the advisor omits.
type AdvisorResponse struct {
	Analysis string             `json:"analysis"`
	Slots    []AdvisorSlotScore `json:"slots"`
}
