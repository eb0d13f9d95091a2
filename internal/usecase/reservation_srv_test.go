package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memShowRepo is an in-memory stand-in for the Postgres show repository. Its
// CommitSeatMap performs the same compare-and-commit the SQL statement does,
// under a mutex, so concurrent reservations exercise real version races.
type memShowRepo struct {
	mu    sync.Mutex
	shows map[uuid.UUID]*entity.Show
}

func newMemShowRepo(shows ...*entity.Show) *memShowRepo {
	r := &memShowRepo{shows: make(map[uuid.UUID]*entity.Show)}
	for _, show := range shows {
		r.shows[show.ID] = show
	}
	return r
}

func (r *memShowRepo) Create(ctx context.Context, show *entity.Show) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shows[show.ID] = show
	return nil
}

func (r *memShowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	show, ok := r.shows[id]
	if !ok {
		return nil, nil
	}
	copied := *show
	copied.SeatMap = show.SeatMap.Clone()
	return &copied, nil
}

func (r *memShowRepo) FindAll(ctx context.Context) ([]*entity.Show, error) {
	return nil, nil
}

func (r *memShowRepo) Update(ctx context.Context, show *entity.Show) error {
	return nil
}

func (r *memShowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *memShowRepo) CommitSeatMap(ctx context.Context, id uuid.UUID, seatMap entity.SeatMap, totalSeats int, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	show, ok := r.shows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if show.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	show.SeatMap = seatMap.Clone()
	show.TotalSeats = totalSeats
	show.Version++
	return nil
}

func (r *memShowRepo) storedMapJSON(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.Marshal(r.shows[id].SeatMap)
	require.NoError(t, err)
	return data
}

// conflictShowRepo loses every commit, as if another writer always races in.
type conflictShowRepo struct {
	*memShowRepo
}

func (r *conflictShowRepo) CommitSeatMap(ctx context.Context, id uuid.UUID, seatMap entity.SeatMap, totalSeats int, expectedVersion int64) error {
	return repository.ErrVersionConflict
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
}

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, booking)
	return nil
}

func (r *memBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := r.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func newTestShow(seatMap entity.SeatMap) *entity.Show {
	now := time.Now()
	return &entity.Show{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:        "Midnight Screening",
		SeatMapType:  entity.SeatMapTypeDefault,
		SeatMap:      seatMap,
		TotalSeats:   seatMap.SeatCount(),
		Version:      1,
	}
}

func newReservationServiceForTest(shows *memShowRepo, bookings *memBookingRepo, maxRetries int) ReservationService {
	config := &utils.Config{
		Booking: utils.BookingConfig{MaxRetries: maxRetries},
	}
	repo := &repository.Repository{Show: shows, Booking: bookings}
	return NewReservationService(repo, config, zap.NewNop())
}

func TestReserveBooksSeatsAndRecordsBooking(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	showRepo := newMemShowRepo(show)
	bookingRepo := &memBookingRepo{}
	svc := newReservationServiceForTest(showRepo, bookingRepo, 3)

	userID := uuid.New()
	resp, err := svc.Reserve(context.Background(), userID.String(), "female", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1", "A2"}})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.BookedCount)
	assert.Equal(t, []string{"A1", "A2"}, resp.Seats)

	stored, err := showRepo.FindByID(context.Background(), show.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
	for _, id := range []string{"A1", "A2"} {
		seat := stored.SeatMap.Flatten()[id]
		assert.False(t, seat.Available)
		assert.Equal(t, userID, *seat.BookedBy)
		assert.Equal(t, entity.GenderFemale, *seat.Gender)
	}

	require.Len(t, bookingRepo.bookings, 1)
	assert.Equal(t, userID, bookingRepo.bookings[0].UserID)
	assert.Equal(t, []string{"A1", "A2"}, bookingRepo.bookings[0].Seats)
}

func TestReserveDeduplicatesSeatIDs(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	svc := newReservationServiceForTest(newMemShowRepo(show), &memBookingRepo{}, 3)

	resp, err := svc.Reserve(context.Background(), uuid.New().String(), "other", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1", "A1", "A2"}})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.BookedCount)
}

func TestReserveRejectsOverlapAndLeavesMapUntouched(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 3)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, uuid.New().String(), "female", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1", "A2"}})
	require.NoError(t, err)

	before := showRepo.storedMapJSON(t, show.ID)

	_, err = svc.Reserve(ctx, uuid.New().String(), "male", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1", "A3"}})

	var conflict *SeatAlreadyBookedError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A1"}, conflict.SeatIDs)

	after := showRepo.storedMapJSON(t, show.ID)
	assert.Equal(t, before, after, "a rejected request must not change the stored map")
}

func TestReserveUnknownSeat(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	svc := newReservationServiceForTest(newMemShowRepo(show), &memBookingRepo{}, 3)

	_, err := svc.Reserve(context.Background(), uuid.New().String(), "male", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"Z99"}})

	var notFound *SeatNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"Z99"}, notFound.SeatIDs)
}

func TestReserveUnknownShow(t *testing.T) {
	svc := newReservationServiceForTest(newMemShowRepo(), &memBookingRepo{}, 3)

	_, err := svc.Reserve(context.Background(), uuid.New().String(), "male", uuid.New().String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})

	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestReserveConcurrentOverlappingRequests(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 5)

	users := []uuid.UUID{uuid.New(), uuid.New()}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), users[i].String(), "other", show.ID.String(),
				&request.ReserveSeatsRequest{SeatIDs: []string{"B1"}})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *SeatAlreadyBookedError
		require.ErrorAs(t, err, &conflict, "the loser must see an up-to-date conflict")
		assert.Equal(t, []string{"B1"}, conflict.SeatIDs)
	}
	assert.Equal(t, 1, successes, "exactly one of two overlapping requests may win")

	stored, err := showRepo.FindByID(context.Background(), show.ID)
	require.NoError(t, err)
	seat := stored.SeatMap.Flatten()["B1"]
	assert.False(t, seat.Available)
	assert.Contains(t, users, *seat.BookedBy)
}

func TestReserveConcurrentDisjointRequests(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 5)

	seatSets := [][]string{{"C1", "C2"}, {"D1", "D2"}}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), uuid.New().String(), "female", show.ID.String(),
				&request.ReserveSeatsRequest{SeatIDs: seatSets[i]})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored, err := showRepo.FindByID(context.Background(), show.ID)
	require.NoError(t, err)
	seats := stored.SeatMap.Flatten()
	for _, set := range seatSets {
		for _, id := range set {
			assert.False(t, seats[id].Available, "both disjoint bookings must land: %s", id)
		}
	}
}

func TestReserveRetriesExhausted(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	showRepo := &conflictShowRepo{newMemShowRepo(show)}
	config := &utils.Config{Booking: utils.BookingConfig{MaxRetries: 3}}
	repo := &repository.Repository{Show: showRepo, Booking: &memBookingRepo{}}
	svc := NewReservationService(repo, config, zap.NewNop())

	_, err := svc.Reserve(context.Background(), uuid.New().String(), "male", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})

	assert.ErrorIs(t, err, ErrConcurrencyExhausted)
}

func TestReserveMalformedInputIsValidationError(t *testing.T) {
	show := newTestShow(DefaultSeatMap())
	svc := newReservationServiceForTest(newMemShowRepo(show), &memBookingRepo{}, 3)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "not-a-uuid", "male", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Reserve(ctx, uuid.New().String(), "male", "not-a-uuid",
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Reserve(ctx, uuid.New().String(), "male", show.ID.String(),
		&request.ReserveSeatsRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReserveMaterializesMissingSeatMap(t *testing.T) {
	show := newTestShow(nil)
	show.TotalSeats = 0
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 3)

	resp, err := svc.Reserve(context.Background(), uuid.New().String(), "female", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.BookedCount)

	stored, err := showRepo.FindByID(context.Background(), show.ID)
	require.NoError(t, err)
	assert.Equal(t, 158, stored.TotalSeats, "stock layout persisted before booking")
	assert.False(t, stored.SeatMap.Flatten()["A1"].Available)
	assert.Equal(t, int64(3), stored.Version, "one commit for the layout, one for the booking")
}

func TestReserveMaterializesWithSingleAttemptBudget(t *testing.T) {
	show := newTestShow(nil)
	show.TotalSeats = 0
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 1)

	resp, err := svc.Reserve(context.Background(), uuid.New().String(), "male", show.ID.String(),
		&request.ReserveSeatsRequest{SeatIDs: []string{"A1"}})

	require.NoError(t, err, "persisting the layout must not spend the only attempt")
	assert.Equal(t, 1, resp.BookedCount)
}

func TestReserveConcurrentFirstBookersMaterializeOnce(t *testing.T) {
	show := newTestShow(nil)
	show.TotalSeats = 0
	showRepo := newMemShowRepo(show)
	svc := newReservationServiceForTest(showRepo, &memBookingRepo{}, 5)

	users := []uuid.UUID{uuid.New(), uuid.New()}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), users[i].String(), "other", show.ID.String(),
				&request.ReserveSeatsRequest{SeatIDs: []string{"B1"}})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *SeatAlreadyBookedError
		require.ErrorAs(t, err, &conflict, "the loser must see the winner's booking, not a stale map")
		assert.Equal(t, []string{"B1"}, conflict.SeatIDs)
	}
	assert.Equal(t, 1, successes, "exactly one first-booker may win the seat")

	stored, err := showRepo.FindByID(context.Background(), show.ID)
	require.NoError(t, err)
	assert.Equal(t, 158, stored.TotalSeats, "both bookers race to persist one stock layout")
	require.NoError(t, stored.SeatMap.Validate())
	seat := stored.SeatMap.Flatten()["B1"]
	assert.False(t, seat.Available)
	assert.Contains(t, users, *seat.BookedBy)
	assert.Equal(t, int64(3), stored.Version, "one layout commit and one booking commit")
}
