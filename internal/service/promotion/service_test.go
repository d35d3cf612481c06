package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seatwise/seatwise/internal/domain"
)

func validPromo() *domain.Promotion {
	now := time.Now()
	return &domain.Promotion{
		Code:          "LAUNCH10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		StartsAt:      now.Add(-time.Hour),
		EndsAt:        now.Add(time.Hour),
		MaxUsage:      100,
		UsedCount:     5,
		Active:        true,
	}
}

func TestApplicable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*domain.Promotion)
		want   error
	}{
		{"valid", func(*domain.Promotion) {}, nil},
		{"inactive", func(p *domain.Promotion) { p.Active = false }, ErrInactive},
		{"not started", func(p *domain.Promotion) { p.StartsAt = now.Add(time.Hour) }, ErrNotInWindow},
		{"ended", func(p *domain.Promotion) { p.EndsAt = now.Add(-time.Minute) }, ErrNotInWindow},
		{"exhausted", func(p *domain.Promotion) { p.UsedCount = p.MaxUsage }, ErrExhausted},
		{"unlimited usage", func(p *domain.Promotion) { p.MaxUsage = 0; p.UsedCount = 10000 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPromo()
			tt.mutate(p)
			err := applicable(p, now)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDiscountCents(t *testing.T) {
	tests := []struct {
		name  string
		typ   domain.DiscountType
		value float64
		total int64
		want  int64
	}{
		{"ten percent", domain.DiscountPercentage, 10, 20000, 2000},
		{"percentage rounds", domain.DiscountPercentage, 12.5, 999, 125},
		{"fixed in currency units", domain.DiscountFixed, 50, 20000, 5000},
		{"fixed clamped to total", domain.DiscountFixed, 500, 20000, 20000},
		{"hundred percent", domain.DiscountPercentage, 100, 12345, 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Promotion{DiscountType: tt.typ, DiscountValue: tt.value}
			assert.Equal(t, tt.want, DiscountCents(p, tt.total))
		})
	}
}
