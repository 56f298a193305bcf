// models/poll.go
package models

import "time"

// SmartPoll is a one-shot poll composed from the best slot under each
// requested objective, deduplicated by start time. Polls are ephemeral;
// handlers may stash them in the cache with a TTL but nothing persists them.
type SmartPoll struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
	Constraints     ConstraintSpec  `json:"constraints"`
	Options         []CandidateSlot `json:"options"`
	Recommendation  string          `json:"recommendation"`
}
