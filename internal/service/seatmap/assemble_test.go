package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestPriceCents(t *testing.T) {
	tests := []struct {
		name       string
		base       int64
		multiplier float64
		want       int64
	}{
		{"standard", 10000, 1.0, 10000},
		{"vip", 10000, 1.5, 15000},
		{"premium", 10000, 2.0, 20000},
		{"rounds half up", 2500, 1.01, 2525},
		{"odd cents round", 999, 1.5, 1499},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceCents(tt.base, tt.multiplier))
		})
	}
}

func TestLayoutHintsDeterministic(t *testing.T) {
	a := layoutHints(7)
	b := layoutHints(7)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Shape)
	assert.Positive(t, a.ScreenWidth)
	assert.Positive(t, a.RowSpacing)
}

func testSchedule(totalSeats int) *domain.ShowSchedule {
	return &domain.ShowSchedule{
		ID:             11,
		ShowID:         3,
		VenueID:        5,
		TotalSeats:     totalSeats,
		BasePriceCents: 10000,
		Status:         domain.ScheduleActive,
	}
}

func TestAssembleEmptyVenue(t *testing.T) {
	sm := assemble(testSchedule(0), &domain.Venue{ID: 5}, nil, nil, nil)

	assert.True(t, sm.Empty)
	assert.Contains(t, sm.Reason, "no seats configured")
	assert.Equal(t, int64(3), sm.ShowID)
	assert.Equal(t, int64(11), sm.ScheduleID)
	assert.Empty(t, sm.Rows)
}

func TestAssembleStates(t *testing.T) {
	seats := []domain.Seat{
		{ID: 1, Row: "A", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{ID: 2, Row: "A", Number: 2, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{ID: 3, Row: "B", Number: 1, Category: domain.SeatVIP, PriceMultiplier: 1.5},
		{ID: 4, Row: "B", Number: 2, Category: domain.SeatPremium, PriceMultiplier: 2.0},
	}
	venue := &domain.Venue{ID: 5, PhysicalCapacity: 4}

	held := map[int64]bool{2: true}
	sold := map[int64]bool{3: true}

	sm := assemble(testSchedule(4), venue, seats, held, sold)

	require.Len(t, sm.Rows, 2)
	assert.Equal(t, "A", sm.Rows[0].Label)
	assert.Equal(t, "B", sm.Rows[1].Label)

	byID := map[int64]domain.SeatMapSeat{}
	for _, row := range sm.Rows {
		for _, s := range row.Seats {
			byID[s.SeatID] = s
		}
	}

	assert.Equal(t, domain.SeatAvailable, byID[1].State)
	assert.Equal(t, domain.SeatReserved, byID[2].State)
	assert.Equal(t, domain.SeatSold, byID[3].State)
	assert.Equal(t, domain.SeatAvailable, byID[4].State)

	// Pricing applies the per-seat multiplier to the schedule base price.
	assert.Equal(t, int64(10000), byID[1].PriceCents)
	assert.Equal(t, int64(15000), byID[3].PriceCents)
	assert.Equal(t, int64(20000), byID[4].PriceCents)

	assert.Equal(t, 4, sm.Meta.TotalSeats)
	assert.Equal(t, 2, sm.Meta.Rows)
	assert.Equal(t, 2, sm.Meta.Available)
	assert.Equal(t, 1, sm.Meta.Reserved)
	assert.Equal(t, 1, sm.Meta.Sold)
	assert.Equal(t, 0, sm.Meta.CapacityReservedSeats)
	assert.Equal(t, 2, sm.Meta.MaxRowLength)
	assert.Equal(t, map[string]int{"A": 2, "B": 2}, sm.Meta.RowLengths)
}

func TestAssembleCapacityShortfall(t *testing.T) {
	// 100-seat venue, schedule allotted only 80: 20 seats must show as
	// reserved even though nothing is held or sold.
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
	venue := &domain.Venue{ID: 5, PhysicalCapacity: 100}

	sm := assemble(testSchedule(80), venue, seats, nil, nil)

	assert.Equal(t, 20, sm.Meta.Reserved)
	assert.Equal(t, 20, sm.Meta.CapacityReservedSeats)
	assert.Equal(t, 80, sm.Meta.Available)
	assert.Contains(t, sm.Meta.CapacityReason, "below venue capacity")

	// Capacity-reserved seats carry the flag; held seats would not.
	flagged := 0
	for _, row := range sm.Rows {
		for _, s := range row.Seats {
			if s.CapacityReserved {
				flagged++
				assert.Equal(t, domain.SeatReserved, s.State)
			}
		}
	}
	assert.Equal(t, 20, flagged)
}

func TestAssembleRowOrdering(t *testing.T) {
	seats := []domain.Seat{
		{ID: 1, Row: "AA", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{ID: 2, Row: "Z", Number: 2, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{ID: 3, Row: "Z", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
		{ID: 4, Row: "B", Number: 1, Category: domain.SeatStandard, PriceMultiplier: 1.0},
	}
	venue := &domain.Venue{ID: 1, PhysicalCapacity: 4}

	sm := assemble(testSchedule(4), venue, seats, nil, nil)

	require.Len(t, sm.Rows, 3)
	assert.Equal(t, "B", sm.Rows[0].Label)
	assert.Equal(t, "Z", sm.Rows[1].Label)
	assert.Equal(t, "AA", sm.Rows[2].Label)

	// Within a row seats sort by number.
	assert.Equal(t, int64(3), sm.Rows[1].Seats[0].SeatID)
	assert.Equal(t, int64(2), sm.Rows[1].Seats[1].SeatID)
}
