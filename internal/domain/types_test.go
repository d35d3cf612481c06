package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingRefunded.Terminal())
}

func TestSeatReservationActive(t *testing.T) {
	now := time.Now()
	r := SeatReservation{ExpiresAt: now.Add(time.Minute)}

	assert.True(t, r.Active(now))
	assert.False(t, r.Active(now.Add(time.Minute)), "expiry instant counts as expired")
	assert.False(t, r.Active(now.Add(2*time.Minute)))
}
