package entity

import (
	"fmt"
)

// SeatMap is the theater layout for one show: ordered rows front to back,
// seats ordered left to right within a row. A nil entry is an aisle gap; it
// is not bookable but keeps the row geometry intact, and serializes as JSON
// null so positions survive round-trips.
type SeatMap [][]*Seat

// Flatten returns a seat-id lookup over the whole map, skipping aisle gaps.
func (m SeatMap) Flatten() map[string]*Seat {
	seats := make(map[string]*Seat)
	for _, row := range m {
		for _, seat := range row {
			if seat == nil {
				continue
			}
			seats[seat.ID] = seat
		}
	}
	return seats
}

// SeatCount returns the number of bookable seats (aisle gaps excluded).
func (m SeatMap) SeatCount() int {
	count := 0
	for _, row := range m {
		for _, seat := range row {
			if seat != nil {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy. Mutating the copy never touches the original.
func (m SeatMap) Clone() SeatMap {
	if m == nil {
		return nil
	}
	out := make(SeatMap, len(m))
	for i, row := range m {
		out[i] = make([]*Seat, len(row))
		for j, seat := range row {
			if seat == nil {
				continue
			}
			copied := *seat
			if seat.BookedBy != nil {
				bookedBy := *seat.BookedBy
				copied.BookedBy = &bookedBy
			}
			if seat.Gender != nil {
				gender := *seat.Gender
				copied.Gender = &gender
			}
			out[i][j] = &copied
		}
	}
	return out
}

// Validate checks every seat's invariants and that seat ids are unique
// across the entire map.
func (m SeatMap) Validate() error {
	seen := make(map[string]struct{})
	for _, row := range m {
		for _, seat := range row {
			if seat == nil {
				continue
			}
			if err := seat.Validate(); err != nil {
				return err
			}
			if _, dup := seen[seat.ID]; dup {
				return fmt.Errorf("duplicate seat id %s", seat.ID)
			}
			seen[seat.ID] = struct{}{}
		}
	}
	return nil
}
