package promotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/repository"
	postgresrepo "github.com/seatwise/seatwise/internal/repository/postgres"
)

// Service validates and applies promotion codes. Validation is a pure check
// against the stored promotion; the usage counter is only consumed once the
// discounted booking actually commits.
type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// Validate resolves a code and checks that the promotion can be applied now.
//
// Returns:
//   - *domain.Promotion: the promotion when applicable.
//   - error: promotion.ErrNotFound, ErrInactive, ErrNotInWindow or
//     ErrExhausted describing why it cannot be applied.
func (s *Service) Validate(ctx context.Context, code string) (*domain.Promotion, error) {
	const op = "service.promotion.Validate"

	p, err := s.store.Promotions().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := applicable(p, time.Now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// Consume burns one usage of the code. Called after the booking using the
// promotion committed.
//
// Returns:
//   - error: promotion.ErrExhausted when the cap was reached concurrently.
func (s *Service) Consume(ctx context.Context, code string) error {
	const op = "service.promotion.Consume"

	if err := s.store.Promotions().Consume(ctx, code); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s: %w", op, ErrExhausted)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Create registers a new promotion.
func (s *Service) Create(ctx context.Context, p domain.Promotion) (int64, error) {
	const op = "service.promotion.Create"

	id, err := s.store.Promotions().Create(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// applicable checks every static condition of a promotion at one instant.
func applicable(p *domain.Promotion, now time.Time) error {
	if !p.Active {
		return ErrInactive
	}

	if now.Before(p.StartsAt) || now.After(p.EndsAt) {
		return ErrNotInWindow
	}

	if p.MaxUsage > 0 && p.UsedCount >= p.MaxUsage {
		return ErrExhausted
	}

	return nil
}

// DiscountCents computes the discount a promotion grants on a total. The
// result is clamped to the total so a fixed discount never produces a
// negative amount due.
func DiscountCents(p *domain.Promotion, totalCents int64) int64 {
	var d int64

	switch p.DiscountType {
	case domain.DiscountPercentage:
		d = int64(math.Round(float64(totalCents) * p.DiscountValue / 100))
	case domain.DiscountFixed:
		d = int64(math.Round(p.DiscountValue * 100))
	}

	if d < 0 {
		d = 0
	}

	if d > totalCents {
		d = totalCents
	}

	return d
}
