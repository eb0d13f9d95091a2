package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindAll(ctx context.Context) ([]*entity.Show, error)
	Update(ctx context.Context, show *entity.Show) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CommitSeatMap is the compare-and-commit primitive for seat state. It
	// writes the new map only if the stored version still equals
	// expectedVersion, bumping the version in the same statement. On a lost
	// race it returns ErrVersionConflict and writes nothing.
	CommitSeatMap(ctx context.Context, id uuid.UUID, seatMap entity.SeatMap, totalSeats int, expectedVersion int64) error
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	seatMapJSON, err := json.Marshal(show.SeatMap)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	query := `
		INSERT INTO shows (id, title, description, poster_url, trailer_url, showtimes,
		                   seat_map_type, seat_map, total_seats, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.Exec(ctx, query,
		show.ID,
		show.Title,
		show.Description,
		show.PosterURL,
		show.TrailerURL,
		show.Showtimes,
		show.SeatMapType,
		seatMapJSON,
		show.TotalSeats,
		show.Version,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
			zap.String("title", show.Title),
		)
		return fmt.Errorf("create show %s: %w", show.ID.String(), err)
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, title, description, poster_url, trailer_url, showtimes,
		       seat_map_type, seat_map, total_seats, version, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	show, err := scanShow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return show, nil
}

func (r *showRepository) FindAll(ctx context.Context) ([]*entity.Show, error) {
	query := `
		SELECT id, title, description, poster_url, trailer_url, showtimes,
		       seat_map_type, seat_map, total_seats, version, created_at, updated_at
		FROM shows
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find shows", zap.Error(err))
		return nil, fmt.Errorf("find shows: %w", err)
	}
	defer rows.Close()

	var shows []*entity.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, show)
	}

	return shows, nil
}

// Update replaces the show's metadata and seat map as one administrative
// edit. It goes through the same version check as seat bookings so an admin
// save racing a booking cannot silently drop the booked seats.
func (r *showRepository) Update(ctx context.Context, show *entity.Show) error {
	seatMapJSON, err := json.Marshal(show.SeatMap)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	query := `
		UPDATE shows
		SET title = $2, description = $3, poster_url = $4, trailer_url = $5,
		    showtimes = $6, seat_map_type = $7, seat_map = $8, total_seats = $9,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $10
	`

	result, err := r.db.Exec(ctx, query,
		show.ID,
		show.Title,
		show.Description,
		show.PosterURL,
		show.TrailerURL,
		show.Showtimes,
		show.SeatMapType,
		seatMapJSON,
		show.TotalSeats,
		show.Version,
	)

	if err != nil {
		r.log.Error("Failed to update show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
		)
		return fmt.Errorf("update show %s: %w", show.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return r.resolveStaleWrite(ctx, show.ID)
	}

	return nil
}

func (r *showRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shows WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("delete show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Show deleted", zap.String("show_id", id.String()))
	return nil
}

func (r *showRepository) CommitSeatMap(ctx context.Context, id uuid.UUID, seatMap entity.SeatMap, totalSeats int, expectedVersion int64) error {
	seatMapJSON, err := json.Marshal(seatMap)
	if err != nil {
		return fmt.Errorf("marshal seat map: %w", err)
	}

	// The version check and the write are one statement, so the storage
	// layer decides the race, not this process.
	query := `
		UPDATE shows
		SET seat_map = $2, total_seats = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $4
	`

	result, err := r.db.Exec(ctx, query, id, seatMapJSON, totalSeats, expectedVersion)
	if err != nil {
		r.log.Error("Failed to commit seat map",
			zap.Error(err),
			zap.String("show_id", id.String()),
			zap.Int64("expected_version", expectedVersion),
		)
		return fmt.Errorf("commit seat map for show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return r.resolveStaleWrite(ctx, id)
	}

	return nil
}

// resolveStaleWrite tells a lost version race apart from a deleted show.
func (r *showRepository) resolveStaleWrite(ctx context.Context, id uuid.UUID) error {
	var version int64
	err := r.db.QueryRow(ctx, `SELECT version FROM shows WHERE id = $1`, id).Scan(&version)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve stale write for show %s: %w", id.String(), err)
	}
	return ErrVersionConflict
}

func scanShow(row pgx.Row) (*entity.Show, error) {
	var show entity.Show
	var seatMapJSON []byte

	err := row.Scan(
		&show.ID,
		&show.Title,
		&show.Description,
		&show.PosterURL,
		&show.TrailerURL,
		&show.Showtimes,
		&show.SeatMapType,
		&seatMapJSON,
		&show.TotalSeats,
		&show.Version,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(seatMapJSON) > 0 {
		if err := json.Unmarshal(seatMapJSON, &show.SeatMap); err != nil {
			return nil, fmt.Errorf("unmarshal seat map: %w", err)
		}
	}

	return &show, nil
}
