package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise/internal/domain"
)

type ScheduleRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ScheduleRepo) With(db DB) *ScheduleRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ScheduleRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const scheduleColumns = `id, show_id, venue_id, starts_at, ends_at,
	total_seats, seats_available, base_price_cents, status`

func scanSchedule(row pgx.Row) (*domain.ShowSchedule, error) {
	var s domain.ShowSchedule
	err := row.Scan(
		&s.ID,
		&s.ShowID,
		&s.VenueID,
		&s.StartsAt,
		&s.EndsAt,
		&s.TotalSeats,
		&s.SeatsAvailable,
		&s.BasePriceCents,
		&s.Status,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Get retrieves a schedule by its ID.
//
// Returns:
//   - *domain.ShowSchedule: the schedule when found.
//   - error: repository.ErrNotFound if the schedule is not found.
func (r *ScheduleRepo) Get(ctx context.Context, id int64) (*domain.ShowSchedule, error) {
	const op = "postgres.ScheduleRepo.Get"

	db := r.handle()

	s, err := scanSchedule(db.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM show_schedules WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return s, nil
}

// GetForUpdate locks the schedule row for the duration of the surrounding
// transaction. The booking allocator uses it to serialize seat commits per
// schedule.
func (r *ScheduleRepo) GetForUpdate(ctx context.Context, id int64) (*domain.ShowSchedule, error) {
	const op = "postgres.ScheduleRepo.GetForUpdate"

	db := r.handle()

	s, err := scanSchedule(db.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM show_schedules WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return s, nil
}

func (r *ScheduleRepo) Create(
	ctx context.Context,
	showID, venueID int64,
	startsAt, endsAt time.Time,
	allotment int,
	basePriceCents int64,
) (int64, error) {
	const op = "postgres.ScheduleRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO show_schedules(show_id, venue_id, starts_at, ends_at, total_seats, seats_available, base_price_cents)
       	 VALUES ($1, $2, $3, $4, $5, $5, $6)
     	 RETURNING id`,
		showID, venueID, startsAt, endsAt, allotment, basePriceCents,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// UpdateCounters persists reconciled totals for a schedule. The write is an
// idempotent recomputation; callers only invoke it when a value changed.
func (r *ScheduleRepo) UpdateCounters(ctx context.Context, id int64, totalSeats, seatsAvailable int) error {
	const op = "postgres.ScheduleRepo.UpdateCounters"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE show_schedules SET total_seats = $2, seats_available = $3 WHERE id = $1`,
		id, totalSeats, seatsAvailable,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *ScheduleRepo) UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) error {
	const op = "postgres.ScheduleRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE show_schedules SET status = $2 WHERE id = $1`,
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

// CountByVenue returns how many schedules exist against a venue. The
// reconciler uses it to decide whether the venue's physical capacity is
// still correctable or frozen.
func (r *ScheduleRepo) CountByVenue(ctx context.Context, venueID int64) (int, error) {
	const op = "postgres.ScheduleRepo.CountByVenue"

	db := r.handle()

	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM show_schedules WHERE venue_id = $1`,
		venueID,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

func (r *ScheduleRepo) ListIDsByVenue(ctx context.Context, venueID int64) ([]int64, error) {
	const op = "postgres.ScheduleRepo.ListIDsByVenue"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id FROM show_schedules WHERE venue_id = $1 ORDER BY id`,
		venueID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}

func (r *ScheduleRepo) ListAllIDs(ctx context.Context) ([]int64, error) {
	const op = "postgres.ScheduleRepo.ListAllIDs"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id FROM show_schedules ORDER BY id`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return collectIDs(op, rows)
}

func collectIDs(op string, rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
