package scheduler

import (
	"fmt"
	"time"

	"clubsync/models"
)

// Test fixtures share a fixed clock: Monday 2025-01-06 06:00 UTC. With the
// two-hour notice window the first searchable slot is 08:00 the same day.
var testNow = time.Date(2025, time.January, 6, 6, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	users []models.User
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (r *fakeUserRepo) GetAll(clubFilter string) ([]models.User, error) {
	if clubFilter == "" {
		return r.users, nil
	}
	var out []models.User
	for _, u := range r.users {
		if u.Club == clubFilter {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(*models.User) error { return nil }
func (r *fakeUserRepo) Update(*models.User) error { return nil }
func (r *fakeUserRepo) Delete(string) error       { return nil }

type fakeRulesRepo struct {
	rules []models.AvailabilityRule
}

func (r *fakeRulesRepo) ListRules() ([]models.AvailabilityRule, error) { return r.rules, nil }

func (r *fakeRulesRepo) ListRulesForUser(userID string) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRulesRepo) Create(*models.AvailabilityRule) error { return nil }
func (r *fakeRulesRepo) Delete(string) error                   { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
	counts   map[string]models.BookingCounts
}

func (r *fakeBookingRepo) ConfirmedSince(cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingConfirmed && !b.StartTime.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountsByUser(userID string) (models.BookingCounts, error) {
	return r.counts[userID], nil
}

func (r *fakeBookingRepo) Create(*models.Booking) error      { return nil }
func (r *fakeBookingRepo) UpdateStatus(string, string) error { return nil }

// newTestService wires the engine over in-memory fakes with a fixed clock.
func newTestService(users []models.User, rules []models.AvailabilityRule, bookings *fakeBookingRepo) *DefaultSchedulerService {
	if bookings == nil {
		bookings = &fakeBookingRepo{counts: map[string]models.BookingCounts{}}
	}
	if bookings.counts == nil {
		bookings.counts = map[string]models.BookingCounts{}
	}
	return &DefaultSchedulerService{
		Users:        &fakeUserRepo{users: users},
		Rules:        &fakeRulesRepo{rules: rules},
		Bookings:     bookings,
		LookbackDays: DefaultLookbackDays,
		Now:          func() time.Time { return testNow },
	}
}

// threeUsers is the Scenario A universe: U2 carries a recurring Monday
// 09:00-12:00 busy rule, U3 is a mentor.
func threeUsers() ([]models.User, []models.AvailabilityRule) {
	users := []models.User{
		{ID: "u1", Username: "alice", Club: models.ClubPro},
		{ID: "u2", Username: "bob", Club: models.ClubMulti},
		{ID: "u3", Username: "carol", Club: models.ClubGCC, IsMentor: true},
	}
	rules := []models.AvailabilityRule{
		{ID: "r1", UserID: "u2", DayOfWeek: 0, StartHour: 9, EndHour: 12, Busy: true, Recurring: true},
	}
	return users, rules
}

func mondayAt(hour int) time.Time {
	return time.Date(2025, time.January, 6, hour, 0, 0, 0, time.UTC)
}
