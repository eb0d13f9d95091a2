package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"theater-booking/internal/dto/request"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// ReserveSeats handles POST /api/shows/{id}/book (protected)
func (h *ReservationHandler) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	gender, _ := utils.GetGenderFromContext(r.Context())

	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	var req request.ReserveSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Reserve(r.Context(), userID.String(), gender, showID, &req)
	if err != nil {
		h.handleServiceError(w, err, "reserve seats")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *ReservationHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// handleServiceError maps the reservation failure taxonomy to HTTP responses
func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var notFound *usecase.SeatNotFoundError
	var alreadyBooked *usecase.SeatAlreadyBookedError

	switch {
	case errors.Is(err, usecase.ErrShowNotFound):
		h.log.Warn(operation+" failed - show not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &notFound):
		h.log.Warn(operation+" failed - unknown seats",
			zap.Strings("seat_ids", notFound.SeatIDs))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &alreadyBooked):
		h.log.Warn(operation+" failed - seats taken",
			zap.Strings("seat_ids", alreadyBooked.SeatIDs))
		utils.ResponseConflict(w, err.Error(), alreadyBooked.SeatIDs)

	case errors.Is(err, usecase.ErrEmptyRequest):
		h.log.Warn(operation + " failed - empty request")
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConcurrencyExhausted):
		// Contention kept us from evaluating a stable snapshot. Not a seat
		// conflict; the client may simply retry.
		h.log.Warn(operation+" failed - retries exhausted", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
