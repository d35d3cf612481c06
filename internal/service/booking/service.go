package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
	postgresrepo "github.com/seatwise/seatwise/internal/repository/postgres"
	redisrepo "github.com/seatwise/seatwise/internal/repository/redis"
	"github.com/seatwise/seatwise/internal/service/promotion"
	"github.com/seatwise/seatwise/internal/service/reconcile"
	"github.com/seatwise/seatwise/internal/uow"
)

// Notifier delivers booking lifecycle events to interested consumers.
// Delivery is fire-and-forget; a failed publish never affects the booking.
type Notifier interface {
	PublishBookingEvent(ctx context.Context, event string, b domain.BookingWithSeats) error
}

// PaymentGateway settles refunds with the payment provider. The refund call
// runs before the status change is persisted, so a provider failure leaves
// the booking in its previous state.
type PaymentGateway interface {
	Refund(ctx context.Context, bookingID uuid.UUID, amountCents int64) error
}

// NoopGateway is the default gateway used when no payment provider is
// configured. Refunds succeed immediately.
type NoopGateway struct{}

func (NoopGateway) Refund(ctx context.Context, bookingID uuid.UUID, amountCents int64) error {
	return nil
}

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingRefunded  = "booking.refunded"
)

// Service turns validated seat selections into committed bookings and drives
// the booking status lifecycle. Every mutation runs in one serializable
// transaction; availability is re-checked against live bookings and
// third-party holds inside that transaction, never trusted from the
// caller's earlier reads.
type Service struct {
	store      *postgresrepo.Store
	uow        *uow.UoW
	cache      *redisrepo.Cache
	pubsub     *redisrepo.SchedulePubSub
	reconciler *reconcile.Service
	promos     *promotion.Service
	notifier   Notifier
	gateway    PaymentGateway
	logger     *slog.Logger
}

func New(
	store *postgresrepo.Store,
	u *uow.UoW,
	cache *redisrepo.Cache,
	pubsub *redisrepo.SchedulePubSub,
	reconciler *reconcile.Service,
	promos *promotion.Service,
	notifier Notifier,
	gateway PaymentGateway,
	logger *slog.Logger,
) *Service {
	if gateway == nil {
		gateway = NoopGateway{}
	}

	return &Service{
		store:      store,
		uow:        u,
		cache:      cache,
		pubsub:     pubsub,
		reconciler: reconciler,
		promos:     promos,
		notifier:   notifier,
		gateway:    gateway,
		logger:     logger,
	}
}

type CreateParams struct {
	ScheduleID int64
	UserID     int64
	SeatIDs    []int64
	// SessionID identifies the checkout session whose holds cover the
	// seats. Holds owned by this session never block the booking; holds
	// owned by anyone else do.
	SessionID string
	PromoCode string
	// AmountOverrideCents, when positive, replaces the computed total. The
	// caller is trusted; this is the comp/partner-sale escape hatch.
	AmountOverrideCents int64
}

// Create commits a booking for the selected seats.
//
// Availability is re-validated inside the transaction: a seat already on a
// pending or confirmed booking, or actively held by another session, fails
// the whole booking. All-or-nothing, unlike holds which are best effort.
//
// Returns:
//   - *domain.BookingWithSeats: the committed booking with its seat lines.
//   - error: booking.ErrScheduleNotFound, ErrScheduleArchived,
//     ErrNoSeatsSelected, ErrSeatsNotFound or ErrSeatsUnavailable, or a
//     promotion validation error when a promo code was given.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.BookingWithSeats, error) {
	const op = "service.booking.Create"

	if len(p.SeatIDs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSeatsSelected)
	}

	var promo *domain.Promotion
	if p.PromoCode != "" {
		var err error
		promo, err = s.promos.Validate(ctx, p.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	result, err := s.create(ctx, p, promo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if promo != nil {
		// Consumption after commit: a booking must never fail because the
		// usage counter raced, and a lost increment is acceptable.
		if err := s.promos.Consume(ctx, promo.Code); err != nil {
			s.logger.Warn("promotion consume failed after booking commit",
				"booking_id", result.Booking.ID, "code", promo.Code, "error", err)
		}
	}

	return result, nil
}

func (s *Service) create(
	ctx context.Context,
	p CreateParams,
	promo *domain.Promotion,
) (*domain.BookingWithSeats, error) {
	seatIDs := dedupeSeatIDs(p.SeatIDs)

	var result *domain.BookingWithSeats

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		sched, err := s.store.Schedules().With(tx).GetForUpdate(ctx, p.ScheduleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		if sched.Status == domain.ScheduleArchived {
			return ErrScheduleArchived
		}

		seats, err := s.store.Catalog().With(tx).GetSeats(ctx, seatIDs)
		if err != nil {
			return err
		}
		if len(seats) != len(seatIDs) {
			return ErrSeatsNotFound
		}
		for _, seat := range seats {
			if seat.VenueID != sched.VenueID {
				return ErrSeatsNotFound
			}
		}

		blocked, err := s.store.Bookings().With(tx).BlockedSeatIDs(ctx, sched.ID, seatIDs)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return ErrSeatsUnavailable
		}

		foreign, err := s.store.Holds().With(tx).HeldByOtherSessions(ctx, sched.ID, seatIDs, p.SessionID)
		if err != nil {
			return err
		}
		if len(foreign) > 0 {
			return ErrSeatsUnavailable
		}

		b := domain.Booking{
			ID:         uuid.New(),
			ScheduleID: sched.ID,
			UserID:     p.UserID,
			Status:     domain.BookingConfirmed,
		}

		lines := make([]domain.SeatBooking, 0, len(seats))
		for _, seat := range seats {
			price := seatPriceCents(sched.BasePriceCents, seat.PriceMultiplier)
			b.TotalCents += price
			lines = append(lines, domain.SeatBooking{
				ID:         uuid.New(),
				BookingID:  b.ID,
				ScheduleID: sched.ID,
				SeatID:     seat.ID,
				PriceCents: price,
			})
		}

		if promo != nil {
			b.TotalCents -= promotion.DiscountCents(promo, b.TotalCents)
		}

		if p.AmountOverrideCents > 0 {
			b.TotalCents = p.AmountOverrideCents
		}

		if err := s.store.Bookings().With(tx).Create(ctx, b, lines); err != nil {
			return err
		}

		// The booked seats no longer need their holds; leaving them would
		// double-count the seats as both committed and held until expiry.
		if err := s.store.Holds().With(tx).DeleteForSeats(ctx, sched.ID, seatIDs); err != nil {
			return err
		}

		result = &domain.BookingWithSeats{Booking: b, Seats: lines}

		after(func(ctx context.Context) {
			s.afterMutation(ctx, sched.ShowID, sched.ID)
			s.notify(EventBookingConfirmed, *result)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Get returns a booking with its seat lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.BookingWithSeats, error) {
	const op = "service.booking.Get"

	b, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seats, err := s.store.Bookings().Seats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.BookingWithSeats{Booking: *b, Seats: seats}, nil
}

// UpdateStatus drives the booking lifecycle. Allowed transitions are
// PENDING to CONFIRMED or CANCELLED and CONFIRMED to CANCELLED or REFUNDED;
// terminal statuses accept nothing. Setting the current status again is a
// no-op that succeeds without side effects.
//
// A transition to REFUNDED settles with the payment gateway before the
// status is persisted, so a gateway failure leaves the booking CONFIRMED.
//
// Returns:
//   - *domain.Booking: the booking after the transition.
//   - error: booking.ErrBookingNotFound or ErrInvalidTransition.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.BookingStatus,
) (*domain.Booking, error) {
	const op = "service.booking.UpdateStatus"

	var updated *domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		b, err := s.store.Bookings().With(tx).GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if b.Status == status {
			updated = b
			return nil
		}

		if !canTransition(b.Status, status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, status)
		}

		sched, err := s.store.Schedules().With(tx).Get(ctx, b.ScheduleID)
		if err != nil {
			return err
		}

		if status == domain.BookingRefunded {
			if err := s.gateway.Refund(ctx, b.ID, b.TotalCents); err != nil {
				return fmt.Errorf("refund: %w", err)
			}
		}

		if err := s.store.Bookings().With(tx).UpdateStatus(ctx, id, status); err != nil {
			return err
		}

		seats, err := s.store.Bookings().With(tx).Seats(ctx, id)
		if err != nil {
			return err
		}

		b.Status = status
		b.UpdatedAt = time.Now()
		updated = b

		event := eventFor(status)
		snapshot := domain.BookingWithSeats{Booking: *b, Seats: seats}

		after(func(ctx context.Context) {
			s.afterMutation(ctx, sched.ShowID, sched.ID)
			if event != "" {
				s.notify(event, snapshot)
			}
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// afterMutation refreshes the derived state of a schedule whose inventory
// changed. Failures are logged, not propagated: the booking already
// committed and the next reconciliation corrects any staleness.
func (s *Service) afterMutation(ctx context.Context, showID, scheduleID int64) {
	if _, err := s.reconciler.Schedule(ctx, scheduleID); err != nil {
		s.logger.Warn("reconciliation failed", "schedule_id", scheduleID, "error", err)
	}

	if err := s.cache.InvalidateSchedule(ctx, showID, scheduleID); err != nil {
		s.logger.Warn("seat map invalidation failed", "schedule_id", scheduleID, "error", err)
	}

	_ = s.pubsub.PublishScheduleChanged(ctx, scheduleID)
}

func (s *Service) notify(event string, b domain.BookingWithSeats) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.notifier.PublishBookingEvent(ctx, event, b); err != nil {
			s.logger.Warn("booking event publish failed",
				"event", event, "booking_id", b.Booking.ID, "error", err)
		}
	}()
}

func canTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingCancelled || to == domain.BookingRefunded
	default:
		return false
	}
}

func eventFor(status domain.BookingStatus) string {
	switch status {
	case domain.BookingConfirmed:
		return EventBookingConfirmed
	case domain.BookingCancelled:
		return EventBookingCancelled
	case domain.BookingRefunded:
		return EventBookingRefunded
	default:
		return ""
	}
}

func seatPriceCents(basePriceCents int64, multiplier float64) int64 {
	return int64(math.Round(float64(basePriceCents) * multiplier))
}

func dedupeSeatIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
