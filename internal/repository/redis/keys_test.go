package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "seatwise:v1:seatmap:3:11", KeySeatMap(3, 11))
	assert.Equal(t, "seatwise:v1:schedule:11:availability", KeyScheduleAvailability(11))
	assert.Equal(t, "seatwise:v1:idem:bookings:11:abc", KeyIdemBooking(11, "abc"))
	assert.Equal(t, "seatwise:v1:rl:reserve:ip:1.2.3.4", KeyRateLimit("reserve", "ip:1.2.3.4"))
	assert.Equal(t, "seatwise:v1:schedules:changed", ChannelScheduleChanged())
}
