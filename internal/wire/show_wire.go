package wire

import (
	"theater-booking/internal/adaptor"
	"theater-booking/pkg/middleware"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShow(
	r chi.Router,
	showHandler *adaptor.ShowHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/shows - Browse all shows
	r.Get("/api/shows", showHandler.GetShows)

	// GET /api/shows/{id} - Show details
	r.Get("/api/shows/{id}", showHandler.GetShowByID)

	// GET /api/shows/{id}/seats - Current seat availability
	r.Get("/api/shows/{id}/seats", showHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(config.Auth.TokenSecret, log))
		r.Use(middleware.Admin(log))

		// POST /api/shows - Create show (admin)
		r.Post("/api/shows", showHandler.CreateShow)

		// PUT /api/shows/{id} - Update show (admin)
		r.Put("/api/shows/{id}", showHandler.UpdateShow)

		// DELETE /api/shows/{id} - Delete show (admin)
		r.Delete("/api/shows/{id}", showHandler.DeleteShow)

		// GET /api/admin/shows/{id}/seats/stats - Seat occupancy debug view (admin)
		r.Get("/api/admin/shows/{id}/seats/stats", showHandler.GetSeatStats)
	})
}
