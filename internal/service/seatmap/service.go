package seatmap

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
)

type Config struct {
	// TTL bounds how stale a cached seat map may get when an invalidation
	// is missed. Mutations evict eagerly; the TTL is the backstop.
	TTL             time.Duration
	CatalogPageSize int
}

// Service builds the display-ready seat map for one (show, schedule) pair
// from the seat catalog, live holds and confirmed bookings. Results are
// cached under "{showID}:{scheduleID}" and evicted explicitly by every
// mutation touching the schedule; the cache is a disposable read model and
// may be dropped wholesale at any time.
type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	logger *slog.Logger
	cfg    Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, logger *slog.Logger, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	if cfg.CatalogPageSize <= 0 {
		cfg.CatalogPageSize = 500
	}

	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
		cfg:    cfg,
	}
}

// Build returns the seat map for a schedule of a show, from cache when
// fresh. A venue with no configured seats yields a valid empty map with a
// diagnostic reason, not an error.
//
// Parameters:
//   - ctx: request-scoped context.
//   - showID: show the schedule belongs to.
//   - scheduleID: schedule to map.
//
// Returns:
//   - domain.SeatMap: the seat map (possibly the explicit empty variant).
//   - error: seatmap.ErrScheduleNotFound if the schedule does not exist or
//     does not belong to the show.
func (s *Service) Build(ctx context.Context, showID, scheduleID int64) (domain.SeatMap, error) {
	const op = "service.seatmap.Build"

	key := redisrepo.KeySeatMap(showID, scheduleID)

	sm, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.TTL,
		func(ctx context.Context) (domain.SeatMap, error) {
			return s.build(ctx, showID, scheduleID)
		},
	)
	if err != nil {
		return domain.SeatMap{}, fmt.Errorf("%s: %w", op, err)
	}

	return sm, nil
}

// Invalidate evicts the cached seat map of one (show, schedule) pair. Every
// booking creation or status change, hold creation or release, and schedule
// or seat edit for the pair must call this; there is no write-through path.
func (s *Service) Invalidate(ctx context.Context, showID, scheduleID int64) error {
	return s.cache.InvalidateSchedule(ctx, showID, scheduleID)
}

func (s *Service) build(ctx context.Context, showID, scheduleID int64) (domain.SeatMap, error) {
	sched, err := s.store.Schedules().Get(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.SeatMap{}, ErrScheduleNotFound
		}

		return domain.SeatMap{}, err
	}

	if sched.ShowID != showID {
		return domain.SeatMap{}, ErrScheduleNotFound
	}

	venue, err := s.store.Catalog().GetVenue(ctx, sched.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.SeatMap{}, ErrVenueNotFound
		}

		return domain.SeatMap{}, err
	}

	seats, err := s.loadCatalog(ctx, venue.ID)
	if err != nil {
		return domain.SeatMap{}, err
	}

	if len(seats) == 0 {
		return assemble(sched, venue, nil, nil, nil), nil
	}

	heldIDs, err := s.store.Holds().ActiveSeatIDs(ctx, scheduleID)
	if err != nil {
		return domain.SeatMap{}, err
	}

	soldIDs, err := s.store.Bookings().ConfirmedSeatIDs(ctx, scheduleID)
	if err != nil {
		return domain.SeatMap{}, err
	}

	return assemble(sched, venue, seats, idSet(heldIDs), idSet(soldIDs)), nil
}

// loadCatalog pages through the venue's full seat catalog and checks the
// collected total against the catalog count. A mismatch is a recoverable
// data-integrity discrepancy: it is logged, the catalog is re-fetched once,
// and if still inconsistent the best-available data is used rather than
// failing the request.
func (s *Service) loadCatalog(ctx context.Context, venueID int64) ([]domain.Seat, error) {
	want, err := s.store.Catalog().CountSeats(ctx, venueID)
	if err != nil {
		return nil, err
	}

	seats, err := s.fetchCatalog(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if len(seats) == want {
		return seats, nil
	}

	s.logger.Warn("seat catalog count mismatch, re-fetching",
		"venue_id", venueID, "expected", want, "got", len(seats))

	refetched, err := s.fetchCatalog(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if len(refetched) != want {
		s.logger.Warn("seat catalog still inconsistent, proceeding with best-available data",
			"venue_id", venueID, "expected", want, "got", len(refetched))
	}

	return refetched, nil
}

func (s *Service) fetchCatalog(ctx context.Context, venueID int64) ([]domain.Seat, error) {
	var out []domain.Seat

	for offset := 0; ; offset += s.cfg.CatalogPageSize {
		page, err := s.store.Catalog().ListSeats(ctx, venueID, s.cfg.CatalogPageSize, offset)
		if err != nil {
			return nil, err
		}

		out = append(out, page...)

		if len(page) < s.cfg.CatalogPageSize {
			return out, nil
		}
	}
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
