package usecase

import (
	"fmt"

	"theater-booking/internal/data/entity"

	"github.com/google/uuid"
)

// applyReservation evaluates a reservation against one seat-map snapshot and,
// if every requested seat is free, returns a new map with exactly those seats
// booked for the given user. The input map is never mutated, so a failed
// attempt leaves the caller's snapshot byte-identical.
//
// The request either fully succeeds or fully fails: a single missing id
// fails the whole request, and every unavailable seat is reported together.
// Atomicity against concurrent writers is the repository's job; callers must
// commit the returned map with CommitSeatMap at the snapshot's version.
func applyReservation(m entity.SeatMap, seatIDs []string, userID uuid.UUID, gender entity.Gender) (entity.SeatMap, int, error) {
	ids := dedupeSeatIDs(seatIDs)
	if len(ids) == 0 {
		return nil, 0, ErrEmptyRequest
	}

	seats := m.Flatten()

	var missing []string
	for _, id := range ids {
		if _, ok := seats[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &SeatNotFoundError{SeatIDs: missing}
	}

	var conflicts []string
	for _, id := range ids {
		if !seats[id].Available {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		return nil, 0, &SeatAlreadyBookedError{SeatIDs: conflicts}
	}

	next := m.Clone()
	nextSeats := next.Flatten()

	booked := 0
	for _, id := range ids {
		seat := nextSeats[id]
		seatGender := gender
		seat.Available = false
		seat.BookedBy = &userID
		seat.Gender = &seatGender
		booked++
	}

	if booked != len(ids) {
		return nil, 0, fmt.Errorf("booked %d of %d requested seats", booked, len(ids))
	}

	return next, booked, nil
}

// dedupeSeatIDs collapses repeated ids, keeping first-seen order.
func dedupeSeatIDs(seatIDs []string) []string {
	seen := make(map[string]struct{}, len(seatIDs))
	var ids []string
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
