package usecase

import (
	"context"
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

type ShowService interface {
	// Public endpoints
	GetShows(ctx context.Context) ([]response.ShowResponse, error)
	GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error)
	GetAvailability(ctx context.Context, showID string) (*response.SeatMapResponse, error)

	// Admin endpoints
	CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error)
	UpdateShow(ctx context.Context, showID string, req *request.UpdateShowRequest) (*response.ShowResponse, error)
	DeleteShow(ctx context.Context, showID string) error
	GetSeatStats(ctx context.Context, showID string) (*response.SeatStatsResponse, error)
}

type showService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowService(repo *repository.Repository, log *zap.Logger) ShowService {
	return &showService{
		repo: repo,
		log:  log.With(zap.String("service", "show")),
	}
}

func (s *showService) GetShows(ctx context.Context) ([]response.ShowResponse, error) {
	shows, err := s.repo.Show.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get shows", zap.Error(err))
		return nil, fmt.Errorf("get shows: %w", err)
	}

	showResponses := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		showResponses[i] = response.ShowToResponse(show)
	}

	return showResponses, nil
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error) {
	show, err := s.findShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	resp := response.ShowToResponse(show)
	return &resp, nil
}

// GetAvailability returns the latest committed seat map. Shows that predate
// seat maps are shown the stock layout without persisting it; the layout is
// persisted by the first booking attempt, under the usual version check.
func (s *showService) GetAvailability(ctx context.Context, showID string) (*response.SeatMapResponse, error) {
	show, err := s.findShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	seatMap := show.SeatMap
	totalSeats := show.TotalSeats
	if seatMap.SeatCount() == 0 {
		seatMap = DefaultSeatMap()
		totalSeats = seatMap.SeatCount()
	}

	return &response.SeatMapResponse{
		ShowID:     show.ID.String(),
		SeatMap:    seatMap,
		TotalSeats: totalSeats,
	}, nil
}

func (s *showService) CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	seatMapType := entity.SeatMapTypeDefault
	seatMap := DefaultSeatMap()
	if req.SeatMapType == string(entity.SeatMapTypeCustom) && len(req.SeatMap) > 0 {
		if err := req.SeatMap.Validate(); err != nil {
			return nil, fmt.Errorf("%w: seat map: %v", ErrValidation, err)
		}
		seatMapType = entity.SeatMapTypeCustom
		seatMap = req.SeatMap
	}

	now := time.Now()
	show := &entity.Show{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		TrailerURL:  req.TrailerURL,
		Showtimes:   req.Showtimes,
		SeatMapType: seatMapType,
		SeatMap:     seatMap,
		TotalSeats:  seatMap.SeatCount(),
		Version:     1,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("title", show.Title),
		zap.String("seat_map_type", string(show.SeatMapType)),
		zap.Int("total_seats", show.TotalSeats),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

// UpdateShow edits show metadata and optionally replaces the seat map. The
// write is versioned like a booking commit, so an edit racing a booking
// fails with a conflict instead of overwriting the booked seats.
func (s *showService) UpdateShow(ctx context.Context, showID string, req *request.UpdateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	show, err := s.findShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		show.Title = *req.Title
	}
	if req.Description != nil {
		show.Description = *req.Description
	}
	if req.PosterURL != nil {
		show.PosterURL = *req.PosterURL
	}
	if req.TrailerURL != nil {
		show.TrailerURL = *req.TrailerURL
	}
	if req.Showtimes != nil {
		show.Showtimes = *req.Showtimes
	}
	if len(req.SeatMap) > 0 {
		if err := req.SeatMap.Validate(); err != nil {
			return nil, fmt.Errorf("%w: seat map: %v", ErrValidation, err)
		}
		show.SeatMapType = entity.SeatMapTypeCustom
		show.SeatMap = req.SeatMap
		show.TotalSeats = req.SeatMap.SeatCount()
	}

	if err := s.repo.Show.Update(ctx, show); err != nil {
		s.log.Error("Failed to update show",
			zap.Error(err),
			zap.String("show_id", showID),
		)
		return nil, fmt.Errorf("update show %s: %w", showID, err)
	}

	s.log.Info("Show updated", zap.String("show_id", showID))

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) DeleteShow(ctx context.Context, showID string) error {
	id, err := uuid.Parse(showID)
	if err != nil {
		return fmt.Errorf("%w: malformed show ID %s", ErrValidation, showID)
	}

	if err := s.repo.Show.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrShowNotFound
		}
		s.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", showID),
		)
		return fmt.Errorf("delete show %s: %w", showID, err)
	}

	s.log.Info("Show deleted", zap.String("show_id", showID))
	return nil
}

func (s *showService) GetSeatStats(ctx context.Context, showID string) (*response.SeatStatsResponse, error) {
	show, err := s.findShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	stats := &response.SeatStatsResponse{
		ShowID:      show.ID.String(),
		ShowTitle:   show.Title,
		SeatDetails: []response.BookedSeatDetail{},
	}

	for _, row := range show.SeatMap {
		for _, seat := range row {
			if seat == nil {
				continue
			}
			stats.TotalSeats++
			if seat.Available {
				stats.AvailableSeats++
				continue
			}
			stats.BookedSeats++
			detail := response.BookedSeatDetail{ID: seat.ID}
			if seat.BookedBy != nil {
				detail.BookedBy = seat.BookedBy.String()
			}
			if seat.Gender != nil {
				detail.Gender = *seat.Gender
			}
			stats.SeatDetails = append(stats.SeatDetails, detail)
		}
	}

	return stats, nil
}

func (s *showService) findShow(ctx context.Context, showID string) (*entity.Show, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed show ID %s", ErrValidation, showID)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find show",
			zap.Error(err),
			zap.String("show_id", showID),
		)
		return nil, fmt.Errorf("find show %s: %w", showID, err)
	}
	if show == nil {
		return nil, ErrShowNotFound
	}

	return show, nil
}
