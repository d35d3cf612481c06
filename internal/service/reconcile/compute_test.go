package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCounters(t *testing.T) {
	tests := []struct {
		name string
		in   Snapshot
		want Outcome
	}{
		{
			name: "everything consistent is a no-op",
			in: Snapshot{
				SeatCount:        100,
				ScheduleCount:    1,
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   75,
				Confirmed:        3,
				ActiveHolds:      2,
			},
			want: Outcome{
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   75,
			},
		},
		{
			name: "capacity corrected to seat count on sole schedule",
			in: Snapshot{
				SeatCount:        120,
				ScheduleCount:    1,
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   80,
			},
			want: Outcome{
				PhysicalCapacity: 120,
				TotalSeats:       80,
				SeatsAvailable:   80,
				VenueChanged:     true,
			},
		},
		{
			name: "capacity frozen once a second schedule exists",
			in: Snapshot{
				SeatCount:        120,
				ScheduleCount:    2,
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   80,
			},
			want: Outcome{
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   80,
			},
		},
		{
			name: "allotment clamped to capacity",
			in: Snapshot{
				SeatCount:        100,
				ScheduleCount:    1,
				PhysicalCapacity: 100,
				TotalSeats:       150,
				SeatsAvailable:   150,
			},
			want: Outcome{
				PhysicalCapacity: 100,
				TotalSeats:       100,
				SeatsAvailable:   100,
				ScheduleChanged:  true,
			},
		},
		{
			name: "clamp uses the corrected capacity",
			in: Snapshot{
				SeatCount:        60,
				ScheduleCount:    1,
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   80,
			},
			want: Outcome{
				PhysicalCapacity: 60,
				TotalSeats:       60,
				SeatsAvailable:   60,
				VenueChanged:     true,
				ScheduleChanged:  true,
			},
		},
		{
			name: "availability drift alone triggers a schedule write",
			in: Snapshot{
				SeatCount:        100,
				ScheduleCount:    1,
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   80,
				Confirmed:        5,
				ActiveHolds:      3,
			},
			want: Outcome{
				PhysicalCapacity: 100,
				TotalSeats:       80,
				SeatsAvailable:   72,
				ScheduleChanged:  true,
			},
		},
		{
			name: "oversold schedule yields negative availability",
			in: Snapshot{
				SeatCount:        10,
				ScheduleCount:    1,
				PhysicalCapacity: 10,
				TotalSeats:       10,
				SeatsAvailable:   0,
				Confirmed:        8,
				ActiveHolds:      4,
			},
			want: Outcome{
				PhysicalCapacity: 10,
				TotalSeats:       10,
				SeatsAvailable:   -2,
				ScheduleChanged:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeCounters(tt.in))
		})
	}
}

// Reconciliation must converge: feeding an outcome back in produces no
// further writes.
func TestComputeCountersIdempotent(t *testing.T) {
	in := Snapshot{
		SeatCount:        60,
		ScheduleCount:    1,
		PhysicalCapacity: 100,
		TotalSeats:       80,
		SeatsAvailable:   80,
		Confirmed:        5,
		ActiveHolds:      1,
	}

	first := computeCounters(in)
	assert.True(t, first.VenueChanged)
	assert.True(t, first.ScheduleChanged)

	second := computeCounters(Snapshot{
		SeatCount:        in.SeatCount,
		ScheduleCount:    in.ScheduleCount,
		PhysicalCapacity: first.PhysicalCapacity,
		TotalSeats:       first.TotalSeats,
		SeatsAvailable:   first.SeatsAvailable,
		Confirmed:        in.Confirmed,
		ActiveHolds:      in.ActiveHolds,
	})

	assert.False(t, second.VenueChanged)
	assert.False(t, second.ScheduleChanged)
	assert.Equal(t, first.PhysicalCapacity, second.PhysicalCapacity)
	assert.Equal(t, first.TotalSeats, second.TotalSeats)
	assert.Equal(t, first.SeatsAvailable, second.SeatsAvailable)
}
