package request

import (
	"time"

	"theater-booking/internal/data/entity"
)

type CreateShowRequest struct {
	Title       string         `json:"title" validate:"required,min=1,max=200"`
	Description string         `json:"description,omitempty"`
	PosterURL   string         `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL  string         `json:"trailer_url,omitempty" validate:"omitempty,url"`
	Showtimes   []time.Time    `json:"showtimes,omitempty"`
	SeatMapType string         `json:"seat_map_type,omitempty" validate:"omitempty,oneof=default custom"`
	SeatMap     entity.SeatMap `json:"seat_map,omitempty"`
}

type UpdateShowRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string        `json:"description,omitempty"`
	PosterURL   *string        `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL  *string        `json:"trailer_url,omitempty" validate:"omitempty,url"`
	Showtimes   *[]time.Time   `json:"showtimes,omitempty"`
	SeatMap     entity.SeatMap `json:"seat_map,omitempty"`
}
