package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
	postgresrepo "github.com/seatwise/seatwise/internal/repository/postgres"
)

// Service recomputes the derived seat counters of schedules from live
// source data. It is a pure recomputation over current state: every call
// re-reads the catalog, booking and hold counts, so it is safe to invoke
// redundantly from any trigger (post-booking, post-release, the sweep, or
// an administrative resync) and concurrently with bookings.
type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// Schedule reconciles one schedule and returns its corrected state.
//
// Parameters:
//   - ctx: request-scoped context.
//   - scheduleID: ID of the schedule to reconcile.
//
// Returns:
//   - *domain.ShowSchedule: the schedule with reconciled counters.
//   - error: reconcile.ErrScheduleNotFound if the schedule does not exist;
//     any other condition is corrected in place rather than rejected.
func (s *Service) Schedule(ctx context.Context, scheduleID int64) (*domain.ShowSchedule, error) {
	const op = "service.reconcile.Schedule"

	sched, err := s.store.Schedules().Get(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrScheduleNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	venue, err := s.store.Catalog().GetVenue(ctx, sched.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seatCount, err := s.store.Catalog().CountSeats(ctx, venue.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	scheduleCount, err := s.store.Schedules().CountByVenue(ctx, venue.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	confirmed, err := s.store.Bookings().CountConfirmed(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	activeHolds, err := s.store.Holds().CountActive(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := computeCounters(Snapshot{
		SeatCount:        seatCount,
		ScheduleCount:    scheduleCount,
		PhysicalCapacity: venue.PhysicalCapacity,
		TotalSeats:       sched.TotalSeats,
		SeatsAvailable:   sched.SeatsAvailable,
		Confirmed:        confirmed,
		ActiveHolds:      activeHolds,
	})

	if out.VenueChanged {
		if err := s.store.Catalog().UpdateVenueCapacity(ctx, venue.ID, out.PhysicalCapacity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if out.ScheduleChanged {
		if err := s.store.Schedules().UpdateCounters(ctx, scheduleID, out.TotalSeats, out.SeatsAvailable); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	sched.TotalSeats = out.TotalSeats
	sched.SeatsAvailable = out.SeatsAvailable

	return sched, nil
}

// Venue reconciles every schedule of a venue.
//
// Returns:
//   - int: the number of schedules reconciled.
//   - error: reconcile.ErrVenueNotFound if the venue does not exist.
func (s *Service) Venue(ctx context.Context, venueID int64) (int, error) {
	const op = "service.reconcile.Venue"

	if _, err := s.store.Catalog().GetVenue(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	ids, err := s.store.Schedules().ListIDsByVenue(ctx, venueID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range ids {
		if _, err := s.Schedule(ctx, id); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return len(ids), nil
}

// All reconciles every schedule in the system (the administrative "force
// resync" operation).
func (s *Service) All(ctx context.Context) (int, error) {
	const op = "service.reconcile.All"

	ids, err := s.store.Schedules().ListAllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range ids {
		if _, err := s.Schedule(ctx, id); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return len(ids), nil
}
