package scheduler

import (
	"context"
	"time"

	availabilityRepo "clubsync/database/repository/availability"
	bookingRepo "clubsync/database/repository/booking"
	userRepo "clubsync/database/repository/user"
	"clubsync/models"
	"clubsync/services/intelligence"
)

// SlotSearchRequest parameterises one slot search. Zero values fall back
// to engine defaults (60 minutes, balanced objective, 14 days, top 3).
type SlotSearchRequest struct {
	DurationMinutes int                   `json:"duration_minutes"`
	Constraints     models.ConstraintSpec `json:"constraints"`
	Objective       string                `json:"objective"`
	DaysAhead       int                   `json:"days_ahead"`
	TopN            int                   `json:"top_n"`
	UseAdvisor      bool                  `json:"use_advisor"`
}

// PollRequest parameterises smart-poll composition.
type PollRequest struct {
	Title           string                `json:"meeting_title"`
	DurationMinutes int                   `json:"duration_minutes"`
	Constraints     models.ConstraintSpec `json:"constraints"`
	Objectives      []string              `json:"objectives"`
}

// SchedulerService is the engine surface consumed by the web layer.
type SchedulerService interface {
	// FindOptimalSlots enumerates, validates, scores and ranks candidate
	// meeting slots, returning the top N in deterministic order.
	FindOptimalSlots(ctx context.Context, req SlotSearchRequest) ([]models.CandidateSlot, error)
	// CreatePoll composes a deduplicated 3-option poll across objectives.
	CreatePoll(ctx context.Context, req PollRequest) (*models.SmartPoll, error)
	// LearnPattern derives one user's attendance pattern from history.
	LearnPattern(ctx context.Context, userID string) (*models.UserPattern, error)
	// EstimateProbability estimates one user's attendance probability for
	// a concrete slot time. The result is always in [0,1].
	EstimateProbability(ctx context.Context, userID string, slotTime time.Time) (float64, error)
	// AnalyzeConstraints reports whether a constraint spec is satisfiable
	// within the lookahead window.
	AnalyzeConstraints(ctx context.Context, constraints models.ConstraintSpec, daysAhead int) (*models.ConstraintAnalysis, error)
	// GetBusyUsersForSlot explains per-user availability for one slot.
	GetBusyUsersForSlot(ctx context.Context, slotTime time.Time, durationMinutes int) (*models.SlotOccupancy, error)
}

// DefaultSchedulerService implements SchedulerService on top of the
// directory, availability and booking repositories. Every call snapshots
// its inputs into a fresh search session; the service itself holds no
// mutable state and is safe for concurrent use.
type DefaultSchedulerService struct {
	Users        userRepo.UserRepository
	Rules        availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Advisor      intelligence.Advisor
	LookbackDays int
	// Now supplies the clock; tests inject a fixed time. Nil means time.Now.
	Now func() time.Time
}

// NewDefaultSchedulerService wires the engine. advisorRequired asserts at
// construction time that an advisor is actually configured, for deployments
// that enable advisor-assisted scoring.
func NewDefaultSchedulerService(
	users userRepo.UserRepository,
	rules availabilityRepo.AvailabilityRepository,
	bookings bookingRepo.BookingRepository,
	advisor intelligence.Advisor,
	advisorRequired bool,
) (*DefaultSchedulerService, error) {
	if advisorRequired && advisor == nil {
		return nil, validationErr("advisor", "advisor-assisted scoring enabled but no advisor configured")
	}
	return &DefaultSchedulerService{
		Users:        users,
		Rules:        rules,
		Bookings:     bookings,
		Advisor:      advisor,
		LookbackDays: DefaultLookbackDays,
	}, nil
}

func (s *DefaultSchedulerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
