package scheduler

import (
	"fmt"
	"time"

	"clubsync/models"
)

// searchSession owns one search invocation's point-in-time snapshot of the
// directory, rules and history, plus the lazily populated pattern cache.
// Sessions are never shared between searches, so none of this needs locking.
type searchSession struct {
	svc      *DefaultSchedulerService
	now      time.Time
	universe map[string]models.User
	userIDs  map[string]struct{}
	rules    []models.AvailabilityRule
	byUser   map[string][]models.Booking
	counts   map[string]models.BookingCounts
	patterns map[string]*models.UserPattern
}

// newSearchSession snapshots users, rules and the confirmed-booking history
// inside the lookback window.
func (s *DefaultSchedulerService) newSearchSession() (*searchSession, error) {
	now := s.now()

	users, err := s.Users.GetAll("")
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	rules, err := s.Rules.ListRules()
	if err != nil {
		return nil, fmt.Errorf("load availability rules: %w", err)
	}

	lookback := s.LookbackDays
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	cutoff := now.AddDate(0, 0, -lookback)
	history, err := s.Bookings.ConfirmedSince(cutoff)
	if err != nil {
		return nil, fmt.Errorf("load booking history: %w", err)
	}

	universe := make(map[string]models.User, len(users))
	userIDs := make(map[string]struct{}, len(users))
	for _, u := range users {
		universe[u.ID] = u
		userIDs[u.ID] = struct{}{}
	}

	byUser := make(map[string][]models.Booking)
	for _, b := range history {
		byUser[b.UserID] = append(byUser[b.UserID], b)
	}

	return &searchSession{
		svc:      s,
		now:      now,
		universe: universe,
		userIDs:  userIDs,
		rules:    rules,
		byUser:   byUser,
		counts:   make(map[string]models.BookingCounts),
		patterns: make(map[string]*models.UserPattern),
	}, nil
}

// bookingCounts fetches and caches lifetime booking counts for one user.
func (sess *searchSession) bookingCounts(userID string) (models.BookingCounts, error) {
	if c, ok := sess.counts[userID]; ok {
		return c, nil
	}
	c, err := sess.svc.Bookings.CountsByUser(userID)
	if err != nil {
		return models.BookingCounts{}, fmt.Errorf("booking counts for %s: %w", userID, err)
	}
	sess.counts[userID] = c
	return c, nil
}

// anchorDate is midnight of the session's "today" in the session timezone.
func (sess *searchSession) anchorDate() time.Time {
	y, m, d := sess.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, sess.now.Location())
}

// weekdayIndex maps a time to the 0=Monday .. 6=Sunday convention used by
// availability rules and learned patterns.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
