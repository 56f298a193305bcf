// models/constraint.go
package models

// ConstraintSpec is the set of hard requirements a candidate slot and its
// attendee set must satisfy. Zero values mean "unconstrained": MaxAttendees 0
// is unbounded, EarliestHour/LatestHour 0 fall back to working hours, an
// empty ClubFilter matches every club.
type ConstraintSpec struct {
	RequiredMembers []string `json:"required_members,omitempty"`
	RequiredMentors []string `json:"required_mentors,omitempty"`
	MinAttendees    int      `json:"min_attendees,omitempty"`
	MaxAttendees    int      `json:"max_attendees,omitempty"`
	EarliestHour    int      `json:"earliest_hour,omitempty"`
	LatestHour      int      `json:"latest_hour,omitempty"`
	PreferredDays   []int    `json:"preferred_days,omitempty"`
	ClubFilter      string   `json:"club_filter,omitempty"`
}

// SlotViolations records every constraint a slot failed. Checks never
// short-circuit, so diagnostic endpoints can report all failures at once.
type SlotViolations struct {
	MissingRequired []string `json:"missing_required,omitempty"`
	MissingMentors  []string `json:"missing_mentors,omitempty"`
	MinAttendees    string   `json:"min_attendees,omitempty"`
	MaxAttendees    string   `json:"max_attendees,omitempty"`
	TimeRange       string   `json:"time_range,omitempty"`
	PreferredDays   string   `json:"preferred_days,omitempty"`
	ClubFilter      string   `json:"club_filter,omitempty"`
}

// Empty reports whether no constraint was violated.
func (v SlotViolations) Empty() bool {
	return len(v.MissingRequired) == 0 &&
		len(v.MissingMentors) == 0 &&
		v.MinAttendees == "" &&
		v.MaxAttendees == "" &&
		v.TimeRange == "" &&
		v.PreferredDays == "" &&
		v.ClubFilter == ""
}
