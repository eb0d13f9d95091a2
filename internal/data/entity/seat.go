package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type SeatType string

const (
	SeatTypePremium SeatType = "premium"
	SeatTypeRegular SeatType = "regular"
	SeatTypeEconomy SeatType = "economy"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// SeatPrice returns the ticket price for a seat type.
func SeatPrice(t SeatType) int {
	switch t {
	case SeatTypePremium:
		return 250
	case SeatTypeEconomy:
		return 120
	default:
		return 180
	}
}

// Seat is one bookable seat in a show's layout. The JSON field names match
// the persisted seat map document. BookedBy and Gender are null while the
// seat is available; Gender is the booker's declared gender at booking time
// and is never updated afterwards.
type Seat struct {
	ID        string     `json:"id"`     // row label + number, e.g. "C5"
	Row       string     `json:"row"`    // A, B, C, ...
	Number    int        `json:"number"` // 1, 2, 3, ...
	Type      SeatType   `json:"type"`
	Price     int        `json:"price"`
	Available bool       `json:"available"`
	BookedBy  *uuid.UUID `json:"bookedBy"`
	Gender    *Gender    `json:"gender"`
}

// Validate checks the seat's internal consistency: a seat is unavailable
// exactly when it has a booker, and carries a gender exactly when booked.
func (s *Seat) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("seat has empty id")
	}
	if s.Price <= 0 {
		return fmt.Errorf("seat %s has non-positive price %d", s.ID, s.Price)
	}
	switch s.Type {
	case SeatTypePremium, SeatTypeRegular, SeatTypeEconomy:
	default:
		return fmt.Errorf("seat %s has unknown type %q", s.ID, s.Type)
	}
	if s.Available != (s.BookedBy == nil) {
		return fmt.Errorf("seat %s availability disagrees with booker", s.ID)
	}
	if (s.Gender != nil) != (s.BookedBy != nil) {
		return fmt.Errorf("seat %s gender must be set exactly when booked", s.ID)
	}
	return nil
}
