package wire

import (
	"theater-booking/internal/adaptor"
	"theater-booking/pkg/middleware"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(config.Auth.TokenSecret, log))

		// POST /api/shows/{id}/book - Reserve seats (authenticated users only)
		r.Post("/api/shows/{id}/book", reservationHandler.ReserveSeats)

		// GET /api/user/bookings - View booking history
		r.Get("/api/user/bookings", reservationHandler.GetUserBookings)
	})
}
