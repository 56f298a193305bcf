package bookingRepo

import (
	"time"

	"clubsync/models"
)

// BookingRepository is the booking history store. The scheduler engine
// reads confirmed bookings in a lookback window for preference learning
// and per-user counts for attendance-rate computation.
type BookingRepository interface {
	// ConfirmedSince retrieves all confirmed bookings starting at or after
	// the cutoff.
	ConfirmedSince(cutoff time.Time) ([]models.Booking, error)
	// CountsByUser returns the user's total and confirmed booking counts
	// over their entire history.
	CountsByUser(userID string) (models.BookingCounts, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// UpdateStatus sets the status of an existing booking.
	UpdateStatus(id, status string) error
}
