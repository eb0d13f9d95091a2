package entity

import (
	"github.com/google/uuid"
)

// Booking is an audit record of a successful reservation. It is written
// after the seat map commit and is never consulted to decide availability;
// the show's seat map owns that.
type Booking struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	ShowID uuid.UUID `db:"show_id"`
	Seats  []string  `db:"seats"`
}
