package reconcile

// Snapshot is everything the reconciler reads before recomputing one
// schedule: the live counts from the three sources of truth plus the
// currently persisted values.
type Snapshot struct {
	// SeatCount is the number of seat rows the venue actually has.
	SeatCount int
	// ScheduleCount is the number of schedules referencing the venue.
	ScheduleCount int
	// PhysicalCapacity is the venue's persisted capacity.
	PhysicalCapacity int
	// TotalSeats is the schedule's persisted allotment.
	TotalSeats int
	// SeatsAvailable is the schedule's persisted availability.
	SeatsAvailable int
	// Confirmed is the count of seats in CONFIRMED bookings.
	Confirmed int
	// ActiveHolds is the count of non-expired seat holds.
	ActiveHolds int
}

// Outcome carries the recomputed values and whether each of them differs
// from what is persisted. Nothing is written when the flags are false, which
// is what makes repeated reconciliation a no-op.
type Outcome struct {
	PhysicalCapacity int
	TotalSeats       int
	SeatsAvailable   int
	VenueChanged     bool
	ScheduleChanged  bool
}

// computeCounters is the reconciliation algorithm as a pure function of a
// snapshot. Capacity violations are corrected in place, never rejected:
//
//   - While the venue has at most one schedule, its physical capacity is
//     corrected to the seat count. Once a second schedule exists the
//     capacity is frozen, even if it no longer matches the seat rows, so
//     prior allocations stay valid.
//   - The schedule's allotment is clamped down to the physical capacity.
//   - seatsAvailable is always totalSeats − confirmed − active holds.
func computeCounters(in Snapshot) Outcome {
	out := Outcome{
		PhysicalCapacity: in.PhysicalCapacity,
		TotalSeats:       in.TotalSeats,
	}

	if in.ScheduleCount <= 1 && in.PhysicalCapacity != in.SeatCount {
		out.PhysicalCapacity = in.SeatCount
		out.VenueChanged = true
	}

	if out.TotalSeats > out.PhysicalCapacity {
		out.TotalSeats = out.PhysicalCapacity
	}

	out.SeatsAvailable = out.TotalSeats - in.Confirmed - in.ActiveHolds
	out.ScheduleChanged = out.TotalSeats != in.TotalSeats ||
		out.SeatsAvailable != in.SeatsAvailable

	return out
}
