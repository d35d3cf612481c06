package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
	postgresrepo "github.com/seatwise/seatwise/internal/repository/postgres"
	redisrepo "github.com/seatwise/seatwise/internal/repository/redis"
	"github.com/seatwise/seatwise/internal/service/reconcile"
)

type catalogStore interface {
	CreateVenue(ctx context.Context, name string) (int64, error)
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	BatchCreateSeats(ctx context.Context, venueID int64, seats []domain.Seat) error
	GetSeats(ctx context.Context, seatIDs []int64) ([]domain.Seat, error)
	UpdateSeat(ctx context.Context, seatID int64, category domain.SeatCategory, multiplier float64) error
	CreateShow(ctx context.Context, title string) (int64, error)
}

type scheduleStore interface {
	Create(ctx context.Context, showID, venueID int64, startsAt, endsAt time.Time, allotment int, basePriceCents int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.ShowSchedule, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) error
	ListIDsByVenue(ctx context.Context, venueID int64) ([]int64, error)
}

type scheduleReconciler interface {
	Schedule(ctx context.Context, scheduleID int64) (*domain.ShowSchedule, error)
	Venue(ctx context.Context, venueID int64) (int, error)
	All(ctx context.Context) (int, error)
}

type seatMapCache interface {
	InvalidateSchedule(ctx context.Context, showID, scheduleID int64) error
}

// Service administers venues, seats, shows and schedules. Seat identity
// (venue, row, number) is immutable after creation; edits are limited to
// category and price multiplier so historical bookings keep pointing at the
// seat they were sold for.
type Service struct {
	catalog    catalogStore
	schedules  scheduleStore
	cache      seatMapCache
	reconciler scheduleReconciler
	logger     *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	reconciler *reconcile.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:    store.Catalog(),
		schedules:  store.Schedules(),
		cache:      cache,
		reconciler: reconciler,
		logger:     logger,
	}
}

// CreateVenue registers a venue. Physical capacity starts at zero and is
// corrected by reconciliation once seats exist.
func (s *Service) CreateVenue(ctx context.Context, name string) (int64, error) {
	const op = "service.catalog.CreateVenue"

	id, err := s.catalog.CreateVenue(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetVenue returns a venue.
func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "service.catalog.GetVenue"

	v, err := s.catalog.GetVenue(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// AddSeats inserts seats into a venue's catalog. Rows already present are
// skipped silently, so re-running an import is safe. The venue is
// reconciled afterwards to pick up the new capacity, and every schedule
// against it has its cached seat map evicted so the new seats become
// visible before the cache TTL runs out.
func (s *Service) AddSeats(ctx context.Context, venueID int64, seats []domain.Seat) error {
	const op = "service.catalog.AddSeats"

	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.catalog.BatchCreateSeats(ctx, venueID, seats); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.reconcileVenue(ctx, venueID)
	s.invalidateVenueSchedules(ctx, venueID)

	return nil
}

// LayoutParams describes a rectangular auditorium to generate: rows at
// given width, with the front rows premium and the back rows VIP boxes.
type LayoutParams struct {
	Rows        int
	SeatsPerRow int
	// PremiumRows counts rows from the front assigned PREMIUM.
	PremiumRows int
	// VIPRows counts rows from the back assigned VIP.
	VIPRows int
}

// GenerateLayout builds and inserts a full rectangular seat grid for a
// venue. Row labels run "A", "B", ..., "Z", "AA", "AB" and seats are
// numbered from 1 within each row. Default multipliers are 1.0 STANDARD,
// 2.0 PREMIUM and 1.5 VIP.
//
// Returns:
//   - int: the number of seats generated.
//   - error: catalog.ErrInvalidLayout when the grid is empty or the
//     category bands overlap.
func (s *Service) GenerateLayout(ctx context.Context, venueID int64, p LayoutParams) (int, error) {
	const op = "service.catalog.GenerateLayout"

	seats, err := buildLayout(p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.AddSeats(ctx, venueID, seats); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(seats), nil
}

// UpdateSeat edits the category and price multiplier of a seat. The
// affected venue's schedules get their cached seat maps evicted since
// pricing feeds the cached projection.
func (s *Service) UpdateSeat(
	ctx context.Context,
	seatID int64,
	category domain.SeatCategory,
	multiplier float64,
) error {
	const op = "service.catalog.UpdateSeat"

	seats, err := s.catalog.GetSeats(ctx, []int64{seatID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(seats) == 0 {
		return fmt.Errorf("%s: %w", op, ErrSeatNotFound)
	}

	if err := s.catalog.UpdateSeat(ctx, seatID, category, multiplier); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrSeatNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateVenueSchedules(ctx, seats[0].VenueID)

	return nil
}

// CreateShow registers a show.
func (s *Service) CreateShow(ctx context.Context, title string) (int64, error) {
	const op = "service.catalog.CreateShow"

	id, err := s.catalog.CreateShow(ctx, title)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// CreateSchedule creates a schedule with the requested seat allotment. The
// allotment is immediately reconciled, which clamps it to the venue's
// physical capacity when over-allocated.
//
// Returns:
//   - *domain.ShowSchedule: the schedule after reconciliation.
func (s *Service) CreateSchedule(
	ctx context.Context,
	showID, venueID int64,
	startsAt, endsAt time.Time,
	allotment int,
	basePriceCents int64,
) (*domain.ShowSchedule, error) {
	const op = "service.catalog.CreateSchedule"

	if _, err := s.catalog.GetVenue(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.schedules.Create(ctx, showID, venueID, startsAt, endsAt, allotment, basePriceCents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sched, err := s.reconciler.Schedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sched, nil
}

// ArchiveSchedule retires a schedule from sale and evicts its cached seat
// map.
func (s *Service) ArchiveSchedule(ctx context.Context, scheduleID int64) error {
	const op = "service.catalog.ArchiveSchedule"

	sched, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrScheduleNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.schedules.UpdateStatus(ctx, scheduleID, domain.ScheduleArchived); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.InvalidateSchedule(ctx, sched.ShowID, scheduleID); err != nil {
		s.logger.Warn("seat map invalidation failed", "schedule_id", scheduleID, "error", err)
	}

	return nil
}

// Reconcile re-derives the counters of one schedule on demand, the manual
// admin entry point into the same correction the background paths use.
func (s *Service) Reconcile(ctx context.Context, scheduleID int64) (*domain.ShowSchedule, error) {
	const op = "service.catalog.Reconcile"

	sched, err := s.reconciler.Schedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, reconcile.ErrScheduleNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrScheduleNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sched, nil
}

// ReconcileAll walks every schedule, returning how many needed correction.
func (s *Service) ReconcileAll(ctx context.Context) (int, error) {
	const op = "service.catalog.ReconcileAll"

	n, err := s.reconciler.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Service) reconcileVenue(ctx context.Context, venueID int64) {
	if _, err := s.reconciler.Venue(ctx, venueID); err != nil {
		s.logger.Warn("venue reconciliation failed", "venue_id", venueID, "error", err)
	}
}

// invalidateVenueSchedules evicts the cached seat maps of every schedule
// against a venue after a catalog edit.
func (s *Service) invalidateVenueSchedules(ctx context.Context, venueID int64) {
	ids, err := s.schedules.ListIDsByVenue(ctx, venueID)
	if err != nil {
		s.logger.Warn("schedule listing failed", "venue_id", venueID, "error", err)
		return
	}

	for _, id := range ids {
		sched, err := s.schedules.Get(ctx, id)
		if err != nil {
			continue
		}
		if err := s.cache.InvalidateSchedule(ctx, sched.ShowID, id); err != nil {
			s.logger.Warn("seat map invalidation failed", "schedule_id", id, "error", err)
		}
	}
}
