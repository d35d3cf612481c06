package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise/internal/domain"
)

type HoldRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *HoldRepo) With(db DB) *HoldRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *HoldRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ClaimSeats attempts to create a hold for every requested seat and returns
// the holds actually created. A seat is skipped, silently, when another
// session already holds it or when it belongs to a live booking; partial
// success is the normal case, not an error.
//
// The claim itself is the INSERT racing on the (schedule_id, seat_id)
// unique constraint, so concurrent calls for overlapping seat sets cannot
// double-hold a seat: the first writer wins, later writers get no row back.
// Expired rows for the requested seats are cleared first so that a dead
// hold never blocks a fresh claim between sweeps.
func (r *HoldRepo) ClaimSeats(
	ctx context.Context,
	scheduleID int64,
	seatIDs []int64,
	userID int64,
	sessionID string,
	expiresAt time.Time,
) ([]domain.SeatReservation, error) {
	const op = "postgres.HoldRepo.ClaimSeats"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`DELETE FROM seat_reservations
		 WHERE schedule_id = $1
		   AND seat_id = ANY($2)
		   AND expires_at <= now()`,
		scheduleID, seatIDs,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	var out []domain.SeatReservation
	for _, seatID := range seatIDs {
		var res domain.SeatReservation

		err := db.QueryRow(ctx,
			`INSERT INTO seat_reservations(id, schedule_id, seat_id, user_id, session_id, expires_at)
			 SELECT $1, $2, $3, $4, $5, $6
			 WHERE NOT EXISTS (
			 	SELECT 1
			 	FROM seat_bookings sb
			 	JOIN bookings b ON b.id = sb.booking_id
			 	WHERE sb.schedule_id = $2
			 	  AND sb.seat_id = $3
			 	  AND b.status IN ('PENDING', 'CONFIRMED')
			 )
			 ON CONFLICT (schedule_id, seat_id) DO NOTHING
			 RETURNING id, schedule_id, seat_id, user_id, session_id, created_at, expires_at`,
			uuid.New(), scheduleID, seatID, userID, sessionID, expiresAt,
		).Scan(&res.ID, &res.ScheduleID, &res.SeatID, &res.UserID, &res.SessionID, &res.CreatedAt, &res.ExpiresAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue // seat already held or booked
			}

			return nil, wrapDBErr(op, err)
		}

		out = append(out, res)
	}

	return out, nil
}

// IsReserved reports whether an active, non-expired hold exists for the
// (seat, schedule) pair. Expired rows still awaiting the sweep do not count.
func (r *HoldRepo) IsReserved(ctx context.Context, seatID, scheduleID int64) (bool, error) {
	const op = "postgres.HoldRepo.IsReserved"

	db := r.handle()

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM seat_reservations
			WHERE schedule_id = $1 AND seat_id = $2 AND expires_at > now()
		 )`,
		scheduleID, seatID,
	).Scan(&exists); err != nil {
		return false, wrapDBErr(op, err)
	}

	return exists, nil
}

// ActiveSeatIDs returns the seats of a schedule with a non-expired hold.
func (r *HoldRepo) ActiveSeatIDs(ctx context.Context, scheduleID int64) ([]int64, error) {
	const op = "postgres.HoldRepo.ActiveSeatIDs"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT seat_id FROM seat_reservations
		 WHERE schedule_id = $1 AND expires_at > now()`,
		scheduleID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}

// HeldByOtherSessions returns which of the given seats carry an active hold
// owned by a session other than sessionID. The booking allocator treats
// those as unavailable during its pre-commit re-validation; the caller's own
// holds never block it.
func (r *HoldRepo) HeldByOtherSessions(
	ctx context.Context,
	scheduleID int64,
	seatIDs []int64,
	sessionID string,
) ([]int64, error) {
	const op = "postgres.HoldRepo.HeldByOtherSessions"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT seat_id FROM seat_reservations
		 WHERE schedule_id = $1
		   AND seat_id = ANY($2)
		   AND session_id <> $3
		   AND expires_at > now()`,
		scheduleID, seatIDs, sessionID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}

// ListBySession returns the session's active holds.
func (r *HoldRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.SeatReservation, error) {
	const op = "postgres.HoldRepo.ListBySession"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, schedule_id, seat_id, user_id, session_id, created_at, expires_at
		 FROM seat_reservations
		 WHERE session_id = $1 AND expires_at > now()
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.SeatReservation
	for rows.Next() {
		var res domain.SeatReservation
		if err := rows.Scan(&res.ID, &res.ScheduleID, &res.SeatID, &res.UserID, &res.SessionID, &res.CreatedAt, &res.ExpiresAt); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// DeleteBySession removes every hold of a session (checkout abandoned or
// completed) and returns the distinct schedules that were affected so the
// caller can reconcile them.
func (r *HoldRepo) DeleteBySession(ctx context.Context, sessionID string) ([]int64, error) {
	const op = "postgres.HoldRepo.DeleteBySession"

	db := r.handle()

	rows, err := db.Query(ctx,
		`DELETE FROM seat_reservations
		 WHERE session_id = $1
		 RETURNING schedule_id`,
		sessionID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	ids, err := collectIDs(op, rows)
	if err != nil {
		return nil, err
	}

	return dedupeIDs(ids), nil
}

// DeleteForSeats removes the holds covering the given seats of a schedule.
// The booking allocator calls it inside the commit transaction so a
// confirmed seat is not double-counted by a leftover hold.
func (r *HoldRepo) DeleteForSeats(ctx context.Context, scheduleID int64, seatIDs []int64) error {
	const op = "postgres.HoldRepo.DeleteForSeats"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`DELETE FROM seat_reservations
		 WHERE schedule_id = $1 AND seat_id = ANY($2)`,
		scheduleID, seatIDs,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// DeleteExpired removes every hold whose expiry has passed and returns the
// distinct schedules that were affected. This is the only mechanism that
// reclaims abandoned holds.
func (r *HoldRepo) DeleteExpired(ctx context.Context) ([]int64, error) {
	const op = "postgres.HoldRepo.DeleteExpired"

	db := r.handle()

	rows, err := db.Query(ctx,
		`DELETE FROM seat_reservations
		 WHERE expires_at <= now()
		 RETURNING schedule_id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	ids, err := collectIDs(op, rows)
	if err != nil {
		return nil, err
	}

	return dedupeIDs(ids), nil
}

// CountActive counts non-expired holds for a schedule.
func (r *HoldRepo) CountActive(ctx context.Context, scheduleID int64) (int, error) {
	const op = "postgres.HoldRepo.CountActive"

	db := r.handle()

	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seat_reservations
		 WHERE schedule_id = $1 AND expires_at > now()`,
		scheduleID,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
