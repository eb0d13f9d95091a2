package request

type ReserveSeatsRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,required"`
}
