// models/pattern.go
package models

// Time-of-day preference buckets.
const (
	PreferenceMorning   = "morning"
	PreferenceAfternoon = "afternoon"
	PreferenceEvening   = "evening"
)

// UserPattern holds what the engine has learned about one user from their
// booking history. Probability maps are keyed by hour (0-23) and day
// (0=Monday .. 6=Sunday) and only contain observed keys; absent keys mean
// "no data", not zero probability.
type UserPattern struct {
	UserID             string          `json:"user_id"`
	TotalBookings      int             `json:"total_bookings"`
	PreferredHours     map[int]int     `json:"preferred_hours"`
	PreferredDays      map[int]int     `json:"preferred_days"`
	HourProbability    map[int]float64 `json:"hour_probability"`
	DayProbability     map[int]float64 `json:"day_probability"`
	TimeSlotPreference string          `json:"time_slot_preference"`
	MostActiveDay      int             `json:"most_active_day"`
	AttendanceRate     float64         `json:"attendance_rate"`
}
