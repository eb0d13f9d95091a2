package adaptor

import (
	"theater-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Show        *ShowHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Show:        NewShowHandler(service.Show, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
