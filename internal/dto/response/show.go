package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type ShowResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	PosterURL   string      `json:"poster_url,omitempty"`
	TrailerURL  string      `json:"trailer_url,omitempty"`
	Showtimes   []time.Time `json:"showtimes"`
	SeatMapType string      `json:"seat_map_type"`
	TotalSeats  int         `json:"total_seats"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SeatMapResponse is the availability projection consumed by the seat-map
// display. It always reflects the latest committed state.
type SeatMapResponse struct {
	ShowID     string         `json:"show_id"`
	SeatMap    entity.SeatMap `json:"seat_map"`
	TotalSeats int            `json:"total_seats"`
}

type BookedSeatDetail struct {
	ID       string        `json:"id"`
	BookedBy string        `json:"booked_by"`
	Gender   entity.Gender `json:"gender"`
}

type SeatStatsResponse struct {
	ShowID         string             `json:"show_id"`
	ShowTitle      string             `json:"show_title"`
	TotalSeats     int                `json:"total_seats"`
	AvailableSeats int                `json:"available_seats"`
	BookedSeats    int                `json:"booked_seats"`
	SeatDetails    []BookedSeatDetail `json:"seat_details"`
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:          show.ID.String(),
		Title:       show.Title,
		Description: show.Description,
		PosterURL:   show.PosterURL,
		TrailerURL:  show.TrailerURL,
		Showtimes:   show.Showtimes,
		SeatMapType: string(show.SeatMapType),
		TotalSeats:  show.TotalSeats,
		CreatedAt:   show.CreatedAt,
	}
}
