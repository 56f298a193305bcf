// models/slot.go
package models

import "time"

// AttendeeDetail is the per-user breakdown attached to a recommended slot.
type AttendeeDetail struct {
	UserID                string  `json:"id"`
	Username              string  `json:"username"`
	Club                  string  `json:"club"`
	IsMentor              bool    `json:"is_mentor"`
	AttendanceProbability float64 `json:"attendance_probability"`
}

// CandidateSlot is one recommended meeting window, scored under a single
// objective. AdvisorScore and Reasoning are populated only when the external
// advisor re-ranked the candidate (or its fallback fired).
type CandidateSlot struct {
	StartTime            time.Time          `json:"start_time"`
	EndTime              time.Time          `json:"end_time"`
	DayName              string             `json:"day_name"`
	Hour                 int                `json:"hour"`
	Score                float64            `json:"score"`
	Objective            string             `json:"objective"`
	AvailableUsers       []string           `json:"available_users"`
	AvailableCount       int                `json:"available_count"`
	ExpectedAttendance   float64            `json:"expected_attendance"`
	Probabilities        map[string]float64 `json:"attendance_probabilities"`
	HighProbabilityUsers []string           `json:"high_probability_users"`
	MentorCount          int                `json:"mentor_count"`
	AttendeeDetails      []AttendeeDetail   `json:"user_details"`
	AdvisorScore         int                `json:"advisor_score,omitempty"`
	Reasoning            string             `json:"reasoning,omitempty"`
}
