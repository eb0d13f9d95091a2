package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Reserve books all requested seats for the user or none of them.
	// gender is the caller's declared gender from the identity token,
	// stamped onto each booked seat for display.
	Reserve(ctx context.Context, userID, gender, showID string, req *request.ReserveSeatsRequest) (*response.ReserveSeatsResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type reservationService struct {
	repo         *repository.Repository
	maxRetries   int
	retryBackoff time.Duration
	log          *zap.Logger
}

func NewReservationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReservationService {
	maxRetries := config.Booking.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &reservationService{
		repo:         repo,
		maxRetries:   maxRetries,
		retryBackoff: config.Booking.RetryBackoff,
		log:          log.With(zap.String("service", "reservation")),
	}
}

// Reserve runs load -> evaluate -> commit-if-unchanged, retrying the whole
// cycle from a fresh load whenever a concurrent writer wins the version
// race. Seat conflicts and unknown seats are final on first evaluation; only
// version conflicts are retried.
func (s *reservationService) Reserve(ctx context.Context, userID, gender, showID string, req *request.ReserveSeatsRequest) (*response.ReserveSeatsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve seats validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user ID %s", ErrValidation, userID)
	}

	showUUID, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed show ID %s", ErrValidation, showID)
	}

	seatIDs := dedupeSeatIDs(req.SeatIDs)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if attempt > 1 && s.retryBackoff > 0 {
			time.Sleep(s.retryBackoff)
		}

		show, err := s.repo.Show.FindByID(ctx, showUUID)
		if err != nil {
			return nil, fmt.Errorf("load show %s: %w", showID, err)
		}
		if show == nil {
			return nil, ErrShowNotFound
		}

		// Shows created before seat maps existed get the stock layout
		// materialized on first booking attempt. The write goes through the
		// same version check, so two concurrent first-bookers cannot
		// persist divergent layouts; the loser re-loads the winner's map.
		if show.SeatMap.SeatCount() == 0 {
			layout := DefaultSeatMap()
			err := s.repo.Show.CommitSeatMap(ctx, show.ID, layout, layout.SeatCount(), show.Version)
			if err != nil && !errors.Is(err, repository.ErrVersionConflict) {
				return nil, fmt.Errorf("materialize seat map for show %s: %w", showID, err)
			}
			s.log.Info("Seat map materialized for show",
				zap.String("show_id", showID),
				zap.Bool("lost_race", errors.Is(err, repository.ErrVersionConflict)),
			)
			// A won materialization is setup work, not a lost race; it must
			// not spend the retry budget, or a single-attempt budget could
			// never book a show that predates seat maps.
			if err == nil {
				attempt--
			}
			continue
		}

		newMap, booked, err := applyReservation(show.SeatMap, seatIDs, userUUID, entity.Gender(gender))
		if err != nil {
			return nil, err
		}

		err = s.repo.Show.CommitSeatMap(ctx, show.ID, newMap, show.TotalSeats, show.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Debug("Seat map commit lost version race",
				zap.String("show_id", showID),
				zap.Int64("stale_version", show.Version),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShowNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("commit reservation for show %s: %w", showID, err)
		}

		booking := &entity.Booking{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			UserID: userUUID,
			ShowID: showUUID,
			Seats:  seatIDs,
		}
		// The seats are committed at this point; a failed audit insert is
		// logged but must not undo or fail the reservation.
		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			s.log.Error("Failed to record booking history",
				zap.Error(err),
				zap.String("show_id", showID),
				zap.String("user_id", userID),
			)
		}

		s.log.Info("Seats reserved",
			zap.String("show_id", showID),
			zap.String("user_id", userID),
			zap.Strings("seats", seatIDs),
			zap.Int("booked_count", booked),
			zap.Int("attempt", attempt),
		)

		return &response.ReserveSeatsResponse{
			BookingID:   booking.ID.String(),
			ShowID:      showID,
			BookedCount: booked,
			Seats:       seatIDs,
		}, nil
	}

	s.log.Warn("Reservation retries exhausted",
		zap.String("show_id", showID),
		zap.String("user_id", userID),
		zap.Int("max_retries", s.maxRetries),
	)
	return nil, ErrConcurrencyExhausted
}

func (s *reservationService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user ID %s", ErrValidation, userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingResponse{
			ID:        booking.ID.String(),
			ShowID:    booking.ShowID.String(),
			Seats:     booking.Seats,
			CreatedAt: booking.CreatedAt,
		}
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}
