// models/booking.go
package models

import "time"

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingPending   = "pending"
)

// Booking is a historical room/meeting booking. The recommendation engine
// reads bookings only to learn attendance patterns; it never writes them.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time" json:"end_time"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BookingCounts summarises a user's booking history for attendance-rate
// computation. Total counts every booking regardless of status.
type BookingCounts struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
}
