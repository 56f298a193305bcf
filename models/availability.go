// models/availability.go
package models

import "time"

// AvailabilityRule is a weekly recurring busy/available window for a user.
// DayOfWeek uses 0=Monday .. 6=Sunday. Hours are half-open: a rule with
// StartHour 9 and EndHour 12 covers 09:00-11:59.
type AvailabilityRule struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	DayOfWeek int       `bson:"day_of_week" json:"day_of_week"`
	StartHour int       `bson:"start_hour" json:"start_hour"`
	EndHour   int       `bson:"end_hour" json:"end_hour"`
	Busy      bool      `bson:"is_busy" json:"is_busy"`
	Recurring bool      `bson:"recurring" json:"recurring"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
