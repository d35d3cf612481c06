package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
)

type PromoRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PromoRepo) With(db DB) *PromoRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PromoRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetByCode retrieves a promotion by its code.
//
// Returns:
//   - *domain.Promotion: the promotion when found.
//   - error: repository.ErrNotFound if no promotion carries the code.
func (r *PromoRepo) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	const op = "postgres.PromoRepo.GetByCode"

	db := r.handle()

	var p domain.Promotion
	err := db.QueryRow(ctx,
		`SELECT id, code, discount_type, discount_value, starts_at, ends_at, max_usage, used_count, active
       	 FROM promotions WHERE code = $1`,
		code,
	).Scan(&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.StartsAt, &p.EndsAt, &p.MaxUsage, &p.UsedCount, &p.Active)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

// Consume increments the usage counter, guarded by the usage cap in the
// same statement so concurrent consumers cannot overrun it.
//
// Returns:
//   - error: repository.ErrConflict when the cap is already reached.
func (r *PromoRepo) Consume(ctx context.Context, code string) error {
	const op = "postgres.PromoRepo.Consume"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE promotions
		 SET used_count = used_count + 1
		 WHERE code = $1
		   AND active
		   AND (max_usage = 0 OR used_count < max_usage)`,
		code,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrConflict)
	}

	return nil
}

func (r *PromoRepo) Create(ctx context.Context, p domain.Promotion) (int64, error) {
	const op = "postgres.PromoRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO promotions(code, discount_type, discount_value, starts_at, ends_at, max_usage, active)
       	 VALUES ($1, $2, $3, $4, $5, $6, $7)
     	 RETURNING id`,
		p.Code, p.DiscountType, p.DiscountValue, p.StartsAt, p.EndsAt, p.MaxUsage, p.Active,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}
