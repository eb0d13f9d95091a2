package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShowNotFound is returned when the requested show does not exist.
var ErrShowNotFound = errors.New("show not found")

// ErrValidation wraps malformed or failed-validation input. Handlers map it
// to a 400 Bad Request.
var ErrValidation = errors.New("invalid request")

// ErrEmptyRequest is returned when a reservation names no seats after
// de-duplication.
var ErrEmptyRequest = errors.New("no seats requested")

// ErrConcurrencyExhausted is returned when the retry budget ran out before a
// reservation could be evaluated against a stable snapshot. It says nothing
// about the seats themselves; the request is safe to retry.
var ErrConcurrencyExhausted = errors.New("reservation lost too many concurrent races, try again")

// SeatNotFoundError reports requested seat ids that do not exist in the
// show's layout. The whole request fails; nothing is committed.
type SeatNotFoundError struct {
	SeatIDs []string
}

func (e *SeatNotFoundError) Error() string {
	return fmt.Sprintf("seats not found in layout: %s", strings.Join(e.SeatIDs, ", "))
}

// SeatAlreadyBookedError reports every requested seat that was unavailable
// in the evaluated snapshot. The whole request fails; nothing is committed.
type SeatAlreadyBookedError struct {
	SeatIDs []string
}

func (e *SeatAlreadyBookedError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.SeatIDs, ", "))
}
