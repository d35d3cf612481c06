package redis

import "fmt"

const ns = "seatwise:v1"

// KeySeatMap is the cache key for one (show, schedule) seat map. The
// "{showID}:{scheduleID}" pair is the invalidation unit: every booking,
// hold or release touching the schedule deletes exactly this key.
func KeySeatMap(showID, scheduleID int64) string {
	return fmt.Sprintf("%s:seatmap:%d:%d", ns, showID, scheduleID)
}

func KeyScheduleAvailability(scheduleID int64) string {
	return fmt.Sprintf("%s:schedule:%d:availability", ns, scheduleID)
}

func KeyIdemBooking(scheduleID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%d:%s", ns, scheduleID, idemKey)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelScheduleChanged() string {
	return ns + ":schedules:changed"
}
