// models/analysis.go
package models

import "time"

// ConstraintAnalysis reports whether a constraint spec admits any slot in
// the lookahead window, and which constraint class is most likely binding
// when it does not.
type ConstraintAnalysis struct {
	Feasible          bool     `json:"feasible"`
	FeasibleSlotCount int      `json:"total_feasible_slots"`
	BestScore         float64  `json:"best_score"`
	Recommendations   []string `json:"recommendations"`
}

// SlotOccupancy explains who is busy and who is free across one concrete
// slot, with a per-user reason for every busy entry.
type SlotOccupancy struct {
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	AvailableUsers []string          `json:"available_users"`
	BusyUsers      []string          `json:"busy_users"`
	Reasons        map[string]string `json:"reasons"`
}
