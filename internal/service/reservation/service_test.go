package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestClampTTL(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, Config{
		MinHoldTTL: 1 * time.Minute,
		MaxHoldTTL: 30 * time.Minute,
	})

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero gets the minimum", 0, 1 * time.Minute},
		{"below minimum", 10 * time.Second, 1 * time.Minute},
		{"within bounds", 5 * time.Minute, 5 * time.Minute},
		{"above maximum", 2 * time.Hour, 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.clampTTL(tt.in))
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, Config{})

	assert.Equal(t, 1*time.Minute, s.cfg.MinHoldTTL)
	assert.Equal(t, 30*time.Minute, s.cfg.MaxHoldTTL)
	assert.Equal(t, 1*time.Minute, s.cfg.SweepInterval)
}

func TestConfigMaxBelowMin(t *testing.T) {
	s := New(nil, nil, nil, nil, nil, nil, Config{
		MinHoldTTL: 10 * time.Minute,
		MaxHoldTTL: 5 * time.Minute,
	})

	assert.Equal(t, 30*time.Minute, s.cfg.MaxHoldTTL)
}

func TestValidateReservable(t *testing.T) {
	active := &domain.ShowSchedule{ID: 1, VenueID: 7, Status: domain.ScheduleActive}
	archived := &domain.ShowSchedule{ID: 2, VenueID: 7, Status: domain.ScheduleArchived}

	venueSeats := []domain.Seat{
		{ID: 10, VenueID: 7},
		{ID: 11, VenueID: 7},
	}

	tests := []struct {
		name      string
		sched     *domain.ShowSchedule
		requested []int64
		seats     []domain.Seat
		wantErr   error
	}{
		{
			name:      "all seats belong to the venue",
			sched:     active,
			requested: []int64{10, 11},
			seats:     venueSeats,
		},
		{
			name:      "archived schedule takes no holds",
			sched:     archived,
			requested: []int64{10},
			seats:     venueSeats[:1],
			wantErr:   ErrScheduleArchived,
		},
		{
			name:      "nonexistent seat",
			sched:     active,
			requested: []int64{10, 999},
			seats:     venueSeats[:1],
			wantErr:   ErrSeatsNotFound,
		},
		{
			name:      "seat from another venue",
			sched:     active,
			requested: []int64{10, 50},
			seats: []domain.Seat{
				{ID: 10, VenueID: 7},
				{ID: 50, VenueID: 8},
			},
			wantErr: ErrSeatsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReservable(tt.sched, tt.requested, tt.seats)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDedupeSeatIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeSeatIDs([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []int64{5}, dedupeSeatIDs([]int64{5}))
	assert.Empty(t, dedupeSeatIDs(nil))
}
