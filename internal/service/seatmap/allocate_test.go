package seatmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestRowLabelRank(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"A", "B"},
		{"B", "Z"},
		{"Z", "AA"},
		{"AA", "AB"},
		{"AZ", "BA"},
		{"ZZ", "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_before_"+tt.b, func(t *testing.T) {
			assert.Less(t, rowLabelRank(tt.a), rowLabelRank(tt.b))
		})
	}

	assert.Equal(t, rowLabelRank("a"), rowLabelRank("A"), "lowercase labels rank the same")
}

func TestShortfallQuotas(t *testing.T) {
	tests := []struct {
		k                      int
		standard, vip, premium int
	}{
		{0, 0, 0, 0},
		{-3, 0, 0, 0},
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{3, 3, 0, 0},
		{5, 4, 1, 0},
		{10, 8, 1, 1},
		{20, 16, 2, 2},
		{25, 20, 3, 2},
		{100, 80, 10, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("k=%d", tt.k), func(t *testing.T) {
			standard, vip, premium := shortfallQuotas(tt.k)
			assert.Equal(t, tt.standard, standard, "standard")
			assert.Equal(t, tt.vip, vip, "vip")
			assert.Equal(t, tt.premium, premium, "premium")
			if tt.k > 0 {
				assert.Equal(t, tt.k, standard+vip+premium, "quotas must sum to k")
			}
		})
	}
}

// grid builds rows*perRow seats with sequential IDs, assigning categories
// through the pick function.
func grid(rows, perRow int, pick func(row int) domain.SeatCategory) []domain.Seat {
	seats := make([]domain.Seat, 0, rows*perRow)
	id := int64(1)
	for r := 0; r < rows; r++ {
		label := string(rune('A' + r))
		for n := 1; n <= perRow; n++ {
			seats = append(seats, domain.Seat{
				ID:       id,
				Row:      label,
				Number:   n,
				Category: pick(r),
			})
			id++
		}
	}
	return seats
}

func TestCapacityShortfall(t *testing.T) {
	// 10 rows of 10, IDs 1..100: row E (41-50) is VIP, row J (91-100)
	// premium, the other 80 seats standard.
	seats := grid(10, 10, func(row int) domain.SeatCategory {
		switch row {
		case 4:
			return domain.SeatVIP
		case 9:
			return domain.SeatPremium
		default:
			return domain.SeatStandard
		}
	})

	t.Run("takes back rows first, right to left", func(t *testing.T) {
		reserved := capacityShortfall(seats, nil, 20)
		require.Len(t, reserved, 20)

		// 16 standard from the back: all of row I (seats 81-90) and the
		// right six of row H (seats 75-80).
		for id := int64(81); id <= 90; id++ {
			assert.True(t, reserved[id], "row I seat %d", id)
		}
		for id := int64(75); id <= 80; id++ {
			assert.True(t, reserved[id], "row H seat %d", id)
		}
		assert.False(t, reserved[74], "row H seat 4 stays available")

		// 2 VIP from the right of row E (seats 49-50).
		assert.True(t, reserved[49])
		assert.True(t, reserved[50])
		assert.False(t, reserved[48])

		// 2 premium from the right of row J (seats 99-100).
		assert.True(t, reserved[99])
		assert.True(t, reserved[100])
		assert.False(t, reserved[98])
	})

	t.Run("blocked seats are not candidates", func(t *testing.T) {
		blocked := map[int64]bool{90: true, 89: true}
		reserved := capacityShortfall(seats, blocked, 20)

		require.Len(t, reserved, 20)
		assert.False(t, reserved[90])
		assert.False(t, reserved[89])
		// The standard quota shifts two seats further forward.
		assert.True(t, reserved[74])
		assert.True(t, reserved[73])
	})

	t.Run("no borrowing across categories", func(t *testing.T) {
		// All-standard venue: VIP and premium quotas find no candidates
		// and the shortfall is only partially covered.
		allStd := grid(4, 5, func(int) domain.SeatCategory { return domain.SeatStandard })

		reserved := capacityShortfall(allStd, nil, 10)

		standard, _, _ := shortfallQuotas(10)
		assert.Len(t, reserved, standard)
	})

	t.Run("quota larger than category", func(t *testing.T) {
		small := grid(1, 3, func(int) domain.SeatCategory { return domain.SeatStandard })

		reserved := capacityShortfall(small, nil, 50)
		assert.Len(t, reserved, 3)
	})

	t.Run("zero shortfall reserves nothing", func(t *testing.T) {
		assert.Empty(t, capacityShortfall(seats, nil, 0))
	})
}
