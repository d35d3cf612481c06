package domain

import (
	"time"

	"github.com/google/uuid"
)

type SeatCategory string

const (
	SeatStandard SeatCategory = "STANDARD"
	SeatPremium  SeatCategory = "PREMIUM"
	SeatVIP      SeatCategory = "VIP"
)

type ScheduleStatus string

const (
	ScheduleActive   ScheduleStatus = "SCHEDULED"
	ScheduleArchived ScheduleStatus = "ARCHIVED"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRefunded  BookingStatus = "REFUNDED"
)

// Terminal reports whether the status releases the booking's seats back to
// the available pool. No transitions are allowed out of a terminal status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingRefunded
}

type Venue struct {
	ID   int64
	Name string
	// PhysicalCapacity mirrors the count of seat rows for the venue. It is
	// corrected by reconciliation while the venue has at most one schedule
	// and frozen afterwards.
	PhysicalCapacity int
}

type Seat struct {
	ID              int64
	VenueID         int64
	Row             string
	Number          int
	Category        SeatCategory
	PriceMultiplier float64
}

type Show struct {
	ID    int64
	Title string
}

type ShowSchedule struct {
	ID             int64
	ShowID         int64
	VenueID        int64
	StartsAt       time.Time
	EndsAt         time.Time
	TotalSeats     int
	SeatsAvailable int
	BasePriceCents int64
	Status         ScheduleStatus
}

// SeatReservation is a session-scoped, TTL-bound hold on one seat of one
// schedule. It blocks other sessions from selecting the seat during checkout
// but is not an inventory commitment.
type SeatReservation struct {
	ID         uuid.UUID
	ScheduleID int64
	SeatID     int64
	UserID     int64
	SessionID  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Active reports whether the hold still blocks the seat at the given
// instant. An expired hold is equivalent to an absent one even before the
// sweep deletes it.
func (r SeatReservation) Active(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

type Booking struct {
	ID         uuid.UUID
	ScheduleID int64
	UserID     int64
	Status     BookingStatus
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SeatBooking struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ScheduleID int64
	SeatID     int64
	PriceCents int64
}

type BookingWithSeats struct {
	Booking Booking
	Seats   []SeatBooking
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Promotion struct {
	ID            int64
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	StartsAt      time.Time
	EndsAt        time.Time
	MaxUsage      int
	UsedCount     int
	Active        bool
}

// SeatState is the display status of one seat in a seat map. Reserved covers
// both seats held by another session and seats blocked by a capacity
// shortfall; sold is derived by elimination, there is no dedicated flag in
// storage.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatReserved  SeatState = "reserved"
	SeatSold      SeatState = "sold"
)

type SeatMapSeat struct {
	SeatID           int64        `json:"seat_id"`
	Row              string       `json:"row"`
	Number           int          `json:"number"`
	Category         SeatCategory `json:"category"`
	PriceCents       int64        `json:"price_cents"`
	State            SeatState    `json:"state"`
	CapacityReserved bool         `json:"capacity_reserved,omitempty"`
}

type SeatMapRow struct {
	Label string        `json:"label"`
	Seats []SeatMapSeat `json:"seats"`
}

// SeatMapLayout carries cosmetic rendering hints. The values are
// deterministic functions of the venue ID, not stored configuration.
type SeatMapLayout struct {
	Shape       string `json:"shape"`
	ScreenWidth int    `json:"screen_width"`
	RowSpacing  int    `json:"row_spacing"`
}

type SeatMapMeta struct {
	TotalSeats            int            `json:"total_seats"`
	Rows                  int            `json:"rows"`
	MaxRowLength          int            `json:"max_row_length"`
	RowLengths            map[string]int `json:"row_lengths"`
	Available             int            `json:"available"`
	Reserved              int            `json:"reserved"`
	Sold                  int            `json:"sold"`
	CapacityReservedSeats int            `json:"capacity_reserved_seats"`
	CapacityReason        string         `json:"capacity_reason,omitempty"`
}

// SeatMap is the computed, cacheable projection of one (show, schedule)
// pair. A venue without configured seats produces Empty=true with a
// diagnostic reason; that is a valid result, not an error.
type SeatMap struct {
	ShowID     int64         `json:"show_id"`
	ScheduleID int64         `json:"schedule_id"`
	Rows       []SeatMapRow  `json:"rows"`
	Meta       SeatMapMeta   `json:"meta"`
	Layout     SeatMapLayout `json:"layout"`
	Empty      bool          `json:"empty,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}
