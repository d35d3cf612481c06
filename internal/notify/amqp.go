package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/seatwise/seatwise/internal/domain"
)

// Queues consumed by downstream workers (email, analytics). One queue per
// lifecycle event, published through the default exchange.
var bookingQueues = []string{
	"booking.confirmed",
	"booking.cancelled",
	"booking.refunded",
}

// Publisher delivers booking lifecycle events over RabbitMQ. Messages are
// persistent and queues durable, so events survive a broker restart;
// delivery to consumers is still at-least-once, not exactly-once.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	const op = "notify.NewPublisher"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range bookingQueues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("%s: declare %s: %w", op, q, err)
		}
	}

	return &Publisher{conn: conn, ch: ch, logger: logger}, nil
}

type bookingEvent struct {
	Event      string    `json:"event"`
	BookingID  string    `json:"booking_id"`
	ScheduleID int64     `json:"schedule_id"`
	UserID     int64     `json:"user_id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	SeatIDs    []int64   `json:"seat_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishBookingEvent publishes one event to its queue. The event name must
// be one of the declared queue names.
func (p *Publisher) PublishBookingEvent(ctx context.Context, event string, b domain.BookingWithSeats) error {
	const op = "notify.Publisher.PublishBookingEvent"

	seatIDs := make([]int64, 0, len(b.Seats))
	for _, sb := range b.Seats {
		seatIDs = append(seatIDs, sb.SeatID)
	}

	body, err := json.Marshal(bookingEvent{
		Event:      event,
		BookingID:  b.Booking.ID.String(),
		ScheduleID: b.Booking.ScheduleID,
		UserID:     b.Booking.UserID,
		Status:     string(b.Booking.Status),
		TotalCents: b.Booking.TotalCents,
		SeatIDs:    seatIDs,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.PublishWithContext(ctx, "", event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.logger.Debug("booking event published", "event", event, "booking_id", b.Booking.ID)

	return nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}
