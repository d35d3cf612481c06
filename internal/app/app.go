package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seatwise/seatwise/internal/config"
	"github.com/seatwise/seatwise/internal/notify"
	"github.com/seatwise/seatwise/internal/postgres"
	"github.com/seatwise/seatwise/internal/redis"
	postgresrepo "github.com/seatwise/seatwise/internal/repository/postgres"
	redisrepo "github.com/seatwise/seatwise/internal/repository/redis"
	"github.com/seatwise/seatwise/internal/service"
	"github.com/seatwise/seatwise/internal/service/booking"
	"github.com/seatwise/seatwise/internal/service/reservation"
	"github.com/seatwise/seatwise/internal/service/seatmap"
	httpgin "github.com/seatwise/seatwise/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	services   *service.Services
	publisher  *notify.Publisher
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewSchedulePubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "reserve", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Booking events are optional; without a broker the bookings still
	// commit, they just emit no events.
	var publisher *notify.Publisher
	var notifier booking.Notifier
	if cfg.RabbitMQ.URL != "" {
		publisher, err = notify.NewPublisher(cfg.RabbitMQ.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rabbitmq publisher: %w", err)
		}
		notifier = publisher
	}

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, notifier, booking.NoopGateway{}, logger, service.Config{
		Reservation: reservation.Config{
			MinHoldTTL:    cfg.Holds.MinTTL,
			MaxHoldTTL:    cfg.Holds.MaxTTL,
			SweepInterval: cfg.Holds.SweepInterval,
		},
		SeatMap: seatmap.Config{TTL: cfg.SeatMap.CacheTTL},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		services:  services,
		publisher: publisher,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Expired hold sweep
	g.Go(func() error {
		if err := a.services.Reservation.RunSweeper(gCtx); err != nil && err != context.Canceled {
			return fmt.Errorf("hold sweeper stopped: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		if a.publisher != nil {
			_ = a.publisher.Close()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
