package response

import (
	"time"
)

type ReserveSeatsResponse struct {
	BookingID   string   `json:"booking_id"`
	ShowID      string   `json:"show_id"`
	BookedCount int      `json:"booked_count"`
	Seats       []string `json:"seats"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	ShowID    string    `json:"show_id"`
	Seats     []string  `json:"seats"`
	CreatedAt time.Time `json:"created_at"`
}
