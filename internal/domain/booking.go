package domain

import "time"

// Booking is a marketer-created venue booking. Bookings have no lifecycle and
// do not participate in dispatch fan-out.
type Booking struct {
	ID         string
	MarketerID string
	Title      string
	Location   string
	Details    string
	CreatedAt  time.Time
}
