package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestRowLabel(t *testing.T) {
	tests := []struct {
		idx  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, rowLabel(tt.idx))
		})
	}
}

func TestBuildLayout(t *testing.T) {
	t.Run("bands and multipliers", func(t *testing.T) {
		seats, err := buildLayout(LayoutParams{
			Rows:        5,
			SeatsPerRow: 4,
			PremiumRows: 2,
			VIPRows:     1,
		})
		require.NoError(t, err)
		require.Len(t, seats, 20)

		byRow := map[string][]domain.Seat{}
		for _, s := range seats {
			byRow[s.Row] = append(byRow[s.Row], s)
		}
		require.Len(t, byRow, 5)

		assert.Equal(t, domain.SeatPremium, byRow["A"][0].Category)
		assert.Equal(t, 2.0, byRow["A"][0].PriceMultiplier)
		assert.Equal(t, domain.SeatPremium, byRow["B"][0].Category)
		assert.Equal(t, domain.SeatStandard, byRow["C"][0].Category)
		assert.Equal(t, 1.0, byRow["C"][0].PriceMultiplier)
		assert.Equal(t, domain.SeatStandard, byRow["D"][0].Category)
		assert.Equal(t, domain.SeatVIP, byRow["E"][0].Category)
		assert.Equal(t, 1.5, byRow["E"][0].PriceMultiplier)

		// Seats number from 1 within each row.
		assert.Equal(t, 1, byRow["A"][0].Number)
		assert.Equal(t, 4, byRow["A"][3].Number)
	})

	t.Run("all standard by default", func(t *testing.T) {
		seats, err := buildLayout(LayoutParams{Rows: 2, SeatsPerRow: 3})
		require.NoError(t, err)
		for _, s := range seats {
			assert.Equal(t, domain.SeatStandard, s.Category)
		}
	})

	t.Run("rejects empty grid", func(t *testing.T) {
		_, err := buildLayout(LayoutParams{Rows: 0, SeatsPerRow: 10})
		assert.ErrorIs(t, err, ErrInvalidLayout)

		_, err = buildLayout(LayoutParams{Rows: 10, SeatsPerRow: 0})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("rejects overlapping bands", func(t *testing.T) {
		_, err := buildLayout(LayoutParams{
			Rows:        4,
			SeatsPerRow: 2,
			PremiumRows: 3,
			VIPRows:     2,
		})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})
}
