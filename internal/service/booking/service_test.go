package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.BookingStatus
		ok       bool
	}{
		{domain.BookingPending, domain.BookingConfirmed, true},
		{domain.BookingPending, domain.BookingCancelled, true},
		{domain.BookingPending, domain.BookingRefunded, false},
		{domain.BookingConfirmed, domain.BookingCancelled, true},
		{domain.BookingConfirmed, domain.BookingRefunded, true},
		{domain.BookingConfirmed, domain.BookingPending, false},
		{domain.BookingCancelled, domain.BookingConfirmed, false},
		{domain.BookingCancelled, domain.BookingPending, false},
		{domain.BookingRefunded, domain.BookingConfirmed, false},
		{domain.BookingRefunded, domain.BookingCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, canTransition(tt.from, tt.to))
		})
	}
}

func TestEventFor(t *testing.T) {
	assert.Equal(t, EventBookingConfirmed, eventFor(domain.BookingConfirmed))
	assert.Equal(t, EventBookingCancelled, eventFor(domain.BookingCancelled))
	assert.Equal(t, EventBookingRefunded, eventFor(domain.BookingRefunded))
	assert.Empty(t, eventFor(domain.BookingPending))
}

func TestSeatPriceCents(t *testing.T) {
	assert.Equal(t, int64(10000), seatPriceCents(10000, 1.0))
	assert.Equal(t, int64(15000), seatPriceCents(10000, 1.5))
	assert.Equal(t, int64(20000), seatPriceCents(10000, 2.0))
	assert.Equal(t, int64(1499), seatPriceCents(999, 1.5))
}

func TestDedupeSeatIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeSeatIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeSeatIDs(nil))
}
