package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
)

type fakeCatalogStore struct {
	venues map[int64]*domain.Venue
	seats  []domain.Seat
}

func (f *fakeCatalogStore) CreateVenue(_ context.Context, _ string) (int64, error) { return 1, nil }

func (f *fakeCatalogStore) GetVenue(_ context.Context, id int64) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeCatalogStore) BatchCreateSeats(_ context.Context, venueID int64, seats []domain.Seat) error {
	for _, seat := range seats {
		seat.VenueID = venueID
		f.seats = append(f.seats, seat)
	}
	return nil
}

func (f *fakeCatalogStore) GetSeats(_ context.Context, seatIDs []int64) ([]domain.Seat, error) {
	var out []domain.Seat
	for _, id := range seatIDs {
		for _, seat := range f.seats {
			if seat.ID == id {
				out = append(out, seat)
			}
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) UpdateSeat(_ context.Context, _ int64, _ domain.SeatCategory, _ float64) error {
	return nil
}

func (f *fakeCatalogStore) CreateShow(_ context.Context, _ string) (int64, error) { return 1, nil }

type fakeScheduleStore struct {
	schedules map[int64]*domain.ShowSchedule
}

func (f *fakeScheduleStore) Create(_ context.Context, _, _ int64, _, _ time.Time, _ int, _ int64) (int64, error) {
	return 1, nil
}

func (f *fakeScheduleStore) Get(_ context.Context, id int64) (*domain.ShowSchedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeScheduleStore) UpdateStatus(_ context.Context, id int64, status domain.ScheduleStatus) error {
	s, ok := f.schedules[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeScheduleStore) ListIDsByVenue(_ context.Context, venueID int64) ([]int64, error) {
	var out []int64
	for id, s := range f.schedules {
		if s.VenueID == venueID {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeReconciler struct {
	venueCalls []int64
}

func (f *fakeReconciler) Schedule(_ context.Context, id int64) (*domain.ShowSchedule, error) {
	return &domain.ShowSchedule{ID: id}, nil
}

func (f *fakeReconciler) Venue(_ context.Context, venueID int64) (int, error) {
	f.venueCalls = append(f.venueCalls, venueID)
	return 0, nil
}

func (f *fakeReconciler) All(_ context.Context) (int, error) { return 0, nil }

type evictionRecorder struct {
	evicted [][2]int64
}

func (r *evictionRecorder) InvalidateSchedule(_ context.Context, showID, scheduleID int64) error {
	r.evicted = append(r.evicted, [2]int64{showID, scheduleID})
	return nil
}

func newTestService() (*Service, *fakeCatalogStore, *fakeScheduleStore, *fakeReconciler, *evictionRecorder) {
	catalog := &fakeCatalogStore{
		venues: map[int64]*domain.Venue{1: {ID: 1, Name: "main hall"}},
	}
	schedules := &fakeScheduleStore{
		schedules: map[int64]*domain.ShowSchedule{
			10: {ID: 10, ShowID: 5, VenueID: 1},
			20: {ID: 20, ShowID: 6, VenueID: 1},
			30: {ID: 30, ShowID: 7, VenueID: 2},
		},
	}
	rec := &fakeReconciler{}
	cache := &evictionRecorder{}

	svc := &Service{
		catalog:    catalog,
		schedules:  schedules,
		cache:      cache,
		reconciler: rec,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return svc, catalog, schedules, rec, cache
}

func TestAddSeatsEvictsCachedSeatMaps(t *testing.T) {
	svc, catalog, _, rec, cache := newTestService()

	err := svc.AddSeats(context.Background(), 1, []domain.Seat{
		{Row: "A", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{Row: "A", Number: 2, Category: domain.SeatStandard, PriceMultiplier: 1.0},
	})
	require.NoError(t, err)
	require.Len(t, catalog.seats, 2)

	assert.Equal(t, []int64{1}, rec.venueCalls)

	// Both of the venue's schedules lose their cached maps; the other
	// venue's schedule is untouched.
	assert.ElementsMatch(t, [][2]int64{{5, 10}, {6, 20}}, cache.evicted)
}

func TestAddSeatsUnknownVenue(t *testing.T) {
	svc, _, _, _, cache := newTestService()

	err := svc.AddSeats(context.Background(), 99, []domain.Seat{
		{Row: "A", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
	})
	require.ErrorIs(t, err, ErrVenueNotFound)
	assert.Empty(t, cache.evicted)
}

func TestGenerateLayoutEvictsCachedSeatMaps(t *testing.T) {
	svc, catalog, _, _, cache := newTestService()

	n, err := svc.GenerateLayout(context.Background(), 1, LayoutParams{Rows: 2, SeatsPerRow: 3})
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Len(t, catalog.seats, 6)

	assert.ElementsMatch(t, [][2]int64{{5, 10}, {6, 20}}, cache.evicted)
}

func TestUpdateSeatEvictsCachedSeatMaps(t *testing.T) {
	svc, catalog, _, _, cache := newTestService()
	catalog.seats = []domain.Seat{
		{ID: 7, VenueID: 1, Row: "A", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
	}

	err := svc.UpdateSeat(context.Background(), 7, domain.SeatPremium, 2.0)
	require.NoError(t, err)

	assert.ElementsMatch(t, [][2]int64{{5, 10}, {6, 20}}, cache.evicted)
}

func TestArchiveScheduleEvictsItsSeatMap(t *testing.T) {
	svc, _, schedules, _, cache := newTestService()

	err := svc.ArchiveSchedule(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.ScheduleArchived, schedules.schedules[10].Status)
	assert.Equal(t, [][2]int64{{5, 10}}, cache.evicted)
}
