package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise/internal/domain"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetVenue retrieves a venue by its ID.
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: repository.ErrNotFound if the venue is not found.
func (r *CatalogRepo) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "postgres.CatalogRepo.GetVenue"

	db := r.handle()

	var v domain.Venue
	err := db.QueryRow(ctx,
		`SELECT id, name, physical_capacity
       	 FROM venues WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.PhysicalCapacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

func (r *CatalogRepo) CreateVenue(ctx context.Context, name string) (int64, error) {
	const op = "postgres.CatalogRepo.CreateVenue"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO venues(name)
       	 VALUES ($1)
     	 RETURNING id`,
		name,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// UpdateVenueCapacity persists a corrected physical capacity. Only the
// reconciler calls this, and only while the venue has at most one schedule.
func (r *CatalogRepo) UpdateVenueCapacity(ctx context.Context, venueID int64, capacity int) error {
	const op = "postgres.CatalogRepo.UpdateVenueCapacity"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE venues SET physical_capacity = $2 WHERE id = $1`,
		venueID, capacity,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

// CountSeats returns the number of seat rows for a venue. This is the
// ground truth the venue's physical capacity is reconciled against.
func (r *CatalogRepo) CountSeats(ctx context.Context, venueID int64) (int, error) {
	const op = "postgres.CatalogRepo.CountSeats"

	db := r.handle()

	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seats WHERE venue_id = $1`,
		venueID,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

// ListSeats lists a page of the venue's seat catalog ordered by row label
// and seat number. Callers page through the full catalog and compare the
// collected count against CountSeats.
func (r *CatalogRepo) ListSeats(
	ctx context.Context,
	venueID int64,
	limit, offset int,
) ([]domain.Seat, error) {
	const op = "postgres.CatalogRepo.ListSeats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, venue_id, row_label, seat_number, category, price_multiplier
		 FROM seats
		 WHERE venue_id = $1
		 ORDER BY row_label, seat_number
		 LIMIT $2 OFFSET $3`,
		venueID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Seat
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Row, &s.Number, &s.Category, &s.PriceMultiplier); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// GetSeats retrieves the given seats in one round trip. The result may be
// shorter than the request when some IDs do not exist; callers decide
// whether that is fatal.
func (r *CatalogRepo) GetSeats(ctx context.Context, seatIDs []int64) ([]domain.Seat, error) {
	const op = "postgres.CatalogRepo.GetSeats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, venue_id, row_label, seat_number, category, price_multiplier
		 FROM seats
		 WHERE id = ANY($1)
		 ORDER BY row_label, seat_number`,
		seatIDs,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Seat
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Row, &s.Number, &s.Category, &s.PriceMultiplier); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) BatchCreateSeats(
	ctx context.Context,
	venueID int64,
	seats []domain.Seat,
) error {
	const op = "postgres.CatalogRepo.BatchCreateSeats"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(
			`INSERT INTO seats(venue_id, row_label, seat_number, category, price_multiplier)
         	 VALUES ($1, $2, $3, $4, $5)
       		 ON CONFLICT (venue_id, row_label, seat_number) DO NOTHING`,
			venueID, s.Row, s.Number, s.Category, s.PriceMultiplier,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpdateSeat edits the mutable attributes of a seat. Seat identity (venue,
// row, number) is immutable once schedules reference the venue, so only
// category and multiplier are writable.
func (r *CatalogRepo) UpdateSeat(
	ctx context.Context,
	seatID int64,
	category domain.SeatCategory,
	multiplier float64,
) error {
	const op = "postgres.CatalogRepo.UpdateSeat"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE seats SET category = $2, price_multiplier = $3 WHERE id = $1`,
		seatID, category, multiplier,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *CatalogRepo) CreateShow(ctx context.Context, title string) (int64, error) {
	const op = "postgres.CatalogRepo.CreateShow"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO shows(title) VALUES ($1) RETURNING id`,
		title,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}
