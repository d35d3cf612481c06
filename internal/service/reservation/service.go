package reservation

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

type Config struct {
	MinHoldTTL    time.Duration
	MaxHoldTTL    time.Duration
	SweepInterval time.Duration
}

// Service manages short-lived seat holds. Holds are advisory claims that
// block other sessions from selecting a seat while checkout is in progress;
// they expire on their own and the periodic sweep reclaims them.
type Service struct {
	store      *postgresrepo.Store
	cache      *redisrepo.Cache
	pubsub     *redisrepo.SchedulePubSub
	limiter    *redisrepo.SlidingWindowLimiter
	reconciler *reconcile.Service
	logger     *slog.Logger
	cfg        Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.SchedulePubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	reconciler *reconcile.Service,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.MinHoldTTL <= 0 {
		cfg.MinHoldTTL = 1 * time.Minute
	}

	if cfg.MaxHoldTTL <= 0 || cfg.MaxHoldTTL < cfg.MinHoldTTL {
		cfg.MaxHoldTTL = 30 * time.Minute
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 1 * time.Minute
	}

	return &Service{
		store:      store,
		cache:      cache,
		pubsub:     pubsub,
		limiter:    limiter,
		reconciler: reconciler,
		logger:     logger,
		cfg:        cfg,
	}
}

// Reserve creates holds for the requested seats, best effort. Seats already
// held by another session or committed to a live booking are silently
// skipped; the returned slice contains only the holds actually created, and
// receiving fewer holds than seats requested is the normal concurrent
// outcome, not an error. Callers must re-check availability before
// confirming a booking.
//
// Every requested seat must exist and belong to the schedule's venue, and
// the schedule must not be archived; unlike the per-seat claim race these
// are hard rejections, since a hold on a seat the schedule can never sell
// would depress its availability counter until the sweep.
//
// Parameters:
//   - ctx: request-scoped context.
//   - scheduleID: schedule the seats belong to.
//   - seatIDs: seats to hold (duplicates collapse).
//   - userID: user making the selection.
//   - sessionID: checkout session owning the holds.
//   - ttl: requested hold lifetime, clamped to the configured bounds.
//   - rlKey: rate-limit bucket (empty disables limiting).
//
// Returns:
//   - []domain.SeatReservation: the holds actually created (may be empty).
//   - error: reservation.ErrScheduleNotFound if the schedule is missing,
//     ErrScheduleArchived if it is no longer on sale, or ErrSeatsNotFound
//     when a seat does not exist or belongs to another venue.
func (s *Service) Reserve(
	ctx context.Context,
	scheduleID int64,
	seatIDs []int64,
	userID int64,
	sessionID string,
	ttl time.Duration,
	rlKey string,
) ([]domain.SeatReservation, error) {
	const op = "service.reservation.Reserve"

	seatIDs = dedupeSeatIDs(seatIDs)
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSeatsSelected)
	}

	ttl = s.clampTTL(ttl)

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	sched, err := s.store.Schedules().Get(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrScheduleNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seats, err := s.store.Catalog().GetSeats(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateReservable(sched, seatIDs, seats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.store.Holds().ClaimSeats(ctx, scheduleID, seatIDs, userID, sessionID, time.Now().Add(ttl))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(created) > 0 {
		s.afterMutation(ctx, sched.ShowID, scheduleID)
	}

	return created, nil
}

// IsReserved reports whether an active hold exists for the (seat, schedule)
// pair.
func (s *Service) IsReserved(ctx context.Context, seatID, scheduleID int64) (bool, error) {
	const op = "service.reservation.IsReserved"

	reserved, err := s.store.Holds().IsReserved(ctx, seatID, scheduleID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return reserved, nil
}

// ActiveReservations lists a session's live holds.
func (s *Service) ActiveReservations(ctx context.Context, sessionID string) ([]domain.SeatReservation, error) {
	const op = "service.reservation.ActiveReservations"

	holds, err := s.store.Holds().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return holds, nil
}

// Release deletes every hold of a session, used both when checkout is
// abandoned and after it completes. Each affected schedule is reconciled
// and its seat map evicted.
//
// Returns:
//   - int: the number of schedules that had holds released.
func (s *Service) Release(ctx context.Context, sessionID string) (int, error) {
	const op = "service.reservation.Release"

	scheduleIDs, err := s.store.Holds().DeleteBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range scheduleIDs {
		s.reconcileAndInvalidate(ctx, id)
	}

	return len(scheduleIDs), nil
}

// SweepExpired deletes every hold past its expiry and reconciles each
// affected schedule. This is the only mechanism that reclaims abandoned
// holds; reads already treat expired holds as absent, so the sweep only
// bounds storage growth and keeps the persisted counters fresh.
//
// Returns:
//   - int: the number of schedules that had expired holds removed.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	const op = "service.reservation.SweepExpired"

	scheduleIDs, err := s.store.Holds().DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range scheduleIDs {
		s.reconcileAndInvalidate(ctx, id)
	}

	return len(scheduleIDs), nil
}

// RunSweeper runs the periodic expiry sweep until the context is
// cancelled. It is started once per process, independent of request
// traffic.
func (s *Service) RunSweeper(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.SweepExpired(ctx)
			if err != nil {
				s.logger.Error("hold sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Info("hold sweep reclaimed holds", "schedules", n)
			}
		}
	}
}

// reconcileAndInvalidate refreshes derived state for one schedule after its
// holds changed. Failures are logged, not propagated: the hold mutation
// itself already committed and the next reconciliation trigger will correct
// any staleness.
func (s *Service) reconcileAndInvalidate(ctx context.Context, scheduleID int64) {
	sched, err := s.store.Schedules().Get(ctx, scheduleID)
	if err != nil {
		s.logger.Warn("post-release schedule lookup failed", "schedule_id", scheduleID, "error", err)
		return
	}

	s.afterMutation(ctx, sched.ShowID, scheduleID)
}

func (s *Service) afterMutation(ctx context.Context, showID, scheduleID int64) {
	if _, err := s.reconciler.Schedule(ctx, scheduleID); err != nil {
		s.logger.Warn("reconciliation failed", "schedule_id", scheduleID, "error", err)
	}

	if err := s.cache.InvalidateSchedule(ctx, showID, scheduleID); err != nil {
		s.logger.Warn("seat map invalidation failed", "schedule_id", scheduleID, "error", err)
	}

	_ = s.pubsub.PublishScheduleChanged(ctx, scheduleID)
}

// validateReservable rejects hold requests that can never produce a sellable
// seat: archived schedules, seats that do not exist, and seats from a venue
// other than the schedule's. requested must already be deduplicated.
func validateReservable(sched *domain.ShowSchedule, requested []int64, seats []domain.Seat) error {
	if sched.Status == domain.ScheduleArchived {
		return ErrScheduleArchived
	}

	if len(seats) != len(requested) {
		return ErrSeatsNotFound
	}

	for _, seat := range seats {
		if seat.VenueID != sched.VenueID {
			return ErrSeatsNotFound
		}
	}

	return nil
}

func dedupeSeatIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func (s *Service) clampTTL(ttl time.Duration) time.Duration {
	if ttl < s.cfg.MinHoldTTL {
		return s.cfg.MinHoldTTL
	}

	if ttl > s.cfg.MaxHoldTTL {
		return s.cfg.MaxHoldTTL
	}

	return ttl
}
