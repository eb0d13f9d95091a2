package entity

import (
	"time"
)

type SeatMapType string

const (
	SeatMapTypeDefault SeatMapType = "default"
	SeatMapTypeCustom  SeatMapType = "custom"
)

// Show is the single source of truth for seat availability. One seat map is
// shared by every showtime of the show, so booking a seat for the 2pm showing
// books it for the 7pm showing too. That mirrors the upstream data model;
// per-showtime availability would need a schema change.
//
// Version is bumped on every committed write. Seat-state writes are only
// valid through the repository's conditional update keyed on the version
// loaded with the document.
type Show struct {
	BaseNoDelete
	Title       string      `db:"title"`
	Description string      `db:"description"`
	PosterURL   string      `db:"poster_url"`
	TrailerURL  string      `db:"trailer_url"` // embed URL for iframe
	Showtimes   []time.Time `db:"showtimes"`
	SeatMapType SeatMapType `db:"seat_map_type"`
	SeatMap     SeatMap     `db:"seat_map"`
	TotalSeats  int         `db:"total_seats"`
	Version     int64       `db:"version"`
}
