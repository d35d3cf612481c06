package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise/internal/domain"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - *domain.Booking: the booking when found.
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	var b domain.Booking
	err := db.QueryRow(ctx,
		`SELECT id, schedule_id, user_id, status, total_cents, created_at, updated_at
       	 FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.ScheduleID, &b.UserID, &b.Status, &b.TotalCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

// GetForUpdate locks the booking row for the surrounding transaction so
// that concurrent status transitions serialize.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.GetForUpdate"

	db := r.handle()

	var b domain.Booking
	err := db.QueryRow(ctx,
		`SELECT id, schedule_id, user_id, status, total_cents, created_at, updated_at
       	 FROM bookings WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&b.ID, &b.ScheduleID, &b.UserID, &b.Status, &b.TotalCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

// Create inserts the booking header and every seat line. The seat lines go
// through one batch inside the caller's transaction, so the booking is
// all-or-nothing: any failing line aborts the whole insert.
func (r *BookingRepo) Create(
	ctx context.Context,
	booking domain.Booking,
	seats []domain.SeatBooking,
) error {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO bookings(id, schedule_id, user_id, status, total_cents)
       	 VALUES ($1, $2, $3, $4, $5)`,
		booking.ID, booking.ScheduleID, booking.UserID, booking.Status, booking.TotalCents,
	); err != nil {
		return wrapDBErr(op, err)
	}

	batch := &pgx.Batch{}
	for _, sb := range seats {
		batch.Queue(
			`INSERT INTO seat_bookings(id, booking_id, schedule_id, seat_id, price_cents)
         	 VALUES ($1, $2, $3, $4, $5)`,
			sb.ID, sb.BookingID, sb.ScheduleID, sb.SeatID, sb.PriceCents,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	const op = "postgres.BookingRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

// Seats returns the seat lines of a booking.
func (r *BookingRepo) Seats(ctx context.Context, bookingID uuid.UUID) ([]domain.SeatBooking, error) {
	const op = "postgres.BookingRepo.Seats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, booking_id, schedule_id, seat_id, price_cents
		 FROM seat_bookings
		 WHERE booking_id = $1
		 ORDER BY seat_id`,
		bookingID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.SeatBooking
	for rows.Next() {
		var sb domain.SeatBooking
		if err := rows.Scan(&sb.ID, &sb.BookingID, &sb.ScheduleID, &sb.SeatID, &sb.PriceCents); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, sb)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ConfirmedSeatIDs returns the seats of a schedule committed to a CONFIRMED
// booking. Cancelled and refunded bookings no longer block their seats.
func (r *BookingRepo) ConfirmedSeatIDs(ctx context.Context, scheduleID int64) ([]int64, error) {
	const op = "postgres.BookingRepo.ConfirmedSeatIDs"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT sb.seat_id
		 FROM seat_bookings sb
		 JOIN bookings b ON b.id = sb.booking_id
		 WHERE sb.schedule_id = $1 AND b.status = 'CONFIRMED'`,
		scheduleID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}

// CountConfirmed counts the confirmed seat commitments of a schedule.
func (r *BookingRepo) CountConfirmed(ctx context.Context, scheduleID int64) (int, error) {
	const op = "postgres.BookingRepo.CountConfirmed"

	db := r.handle()

	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM seat_bookings sb
		 JOIN bookings b ON b.id = sb.booking_id
		 WHERE sb.schedule_id = $1 AND b.status = 'CONFIRMED'`,
		scheduleID,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

// BlockedSeatIDs returns which of the given seats already belong to a live
// (pending or confirmed) booking of the schedule.
func (r *BookingRepo) BlockedSeatIDs(ctx context.Context, scheduleID int64, seatIDs []int64) ([]int64, error) {
	const op = "postgres.BookingRepo.BlockedSeatIDs"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT sb.seat_id
		 FROM seat_bookings sb
		 JOIN bookings b ON b.id = sb.booking_id
		 WHERE sb.schedule_id = $1
		   AND sb.seat_id = ANY($2)
		   AND b.status IN ('PENDING', 'CONFIRMED')`,
		scheduleID, seatIDs,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}
