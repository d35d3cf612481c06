package service

import (
	"log/slog"

	postgres "github.com/seatwise/seatwise/internal/repository/postgres"
	redis "github.com/seatwise/seatwise/internal/repository/redis"
	"github.com/seatwise/seatwise/internal/service/booking"
	"github.com/seatwise/seatwise/internal/service/catalog"
	"github.com/seatwise/seatwise/internal/service/promotion"
	"github.com/seatwise/seatwise/internal/service/reconcile"
	"github.com/seatwise/seatwise/internal/service/reservation"
	"github.com/seatwise/seatwise/internal/service/seatmap"
	"github.com/seatwise/seatwise/internal/uow"
)

type Services struct {
	Catalog     *catalog.Service
	Reconcile   *reconcile.Service
	Reservation *reservation.Service
	SeatMap     *seatmap.Service
	Booking     *booking.Service
	Promotion   *promotion.Service
}

type Config struct {
	Reservation reservation.Config
	SeatMap     seatmap.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.SchedulePubSub,
	limiter *redis.SlidingWindowLimiter,
	notifier booking.Notifier,
	gateway booking.PaymentGateway,
	logger *slog.Logger,
	cfg Config,
) *Services {
	u := uow.NewUoW(store)
	reconciler := reconcile.New(store)
	promos := promotion.New(store)

	return &Services{
		Catalog:     catalog.New(store, cache, reconciler, logger),
		Reconcile:   reconciler,
		Reservation: reservation.New(store, cache, pubsub, limiter, reconciler, logger, cfg.Reservation),
		SeatMap:     seatmap.New(store, cache, logger, cfg.SeatMap),
		Booking:     booking.New(store, u, cache, pubsub, reconciler, promos, notifier, gateway, logger),
		Promotion:   promos,
	}
}
