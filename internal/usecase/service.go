package usecase

import (
	"theater-booking/internal/data/repository"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Show        ShowService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Show:        NewShowService(repo, log),
		Reservation: NewReservationService(repo, config, log),
	}
}
