package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// GetShows handles GET /api/shows (public)
func (h *ShowHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.service.GetShows(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShowByID handles GET /api/shows/{id} (public)
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.service.GetShowByID(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get show by ID")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// GetAvailability handles GET /api/shows/{id}/seats (public)
func (h *ShowHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	seatMap, err := h.service.GetAvailability(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// CreateShow handles POST /api/shows (admin only)
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create show")
		return
	}

	utils.ResponseCreated(w, "success", show)
}

// UpdateShow handles PUT /api/shows/{id} (admin only)
func (h *ShowHandler) UpdateShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	var req request.UpdateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	show, err := h.service.UpdateShow(r.Context(), showID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// DeleteShow handles DELETE /api/shows/{id} (admin only)
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	if err := h.service.DeleteShow(r.Context(), showID); err != nil {
		h.handleServiceError(w, err, "delete show")
		return
	}

	utils.ResponseSuccess(w, "Show deleted successfully", nil)
}

// GetSeatStats handles GET /api/admin/shows/{id}/seats/stats (admin only)
func (h *ShowHandler) GetSeatStats(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	stats, err := h.service.GetSeatStats(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get seat stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// handleServiceError maps show service errors to HTTP responses
func (h *ShowHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrShowNotFound):
		h.log.Warn(operation+" failed - show not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrVersionConflict):
		h.log.Warn(operation+" failed - concurrent modification", zap.Error(err))
		utils.ResponseConflict(w, "Show was modified concurrently, reload and try again", nil)

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
