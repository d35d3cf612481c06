package httpgin

import "time"

type CreateReservationRequest struct {
	UserID    int64   `json:"user_id" binding:"required"`
	SessionID string  `json:"session_id" binding:"required"`
	SeatIDs   []int64 `json:"seat_ids" binding:"required,min=1,dive,required"`
	TTLSec    int     `json:"ttl_sec"`
}

type ReservationView struct {
	ID         string    `json:"id"`
	ScheduleID int64     `json:"schedule_id"`
	SeatID     int64     `json:"seat_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type CreateReservationResponse struct {
	Requested    int               `json:"requested"`
	Reserved     int               `json:"reserved"`
	Reservations []ReservationView `json:"reservations"`
}

type IsReservedResponse struct {
	Reserved bool `json:"reserved"`
}

type ReleaseSessionResponse struct {
	SchedulesReleased int `json:"schedules_released"`
}

type CreateBookingRequest struct {
	ScheduleID          int64   `json:"schedule_id" binding:"required"`
	UserID              int64   `json:"user_id" binding:"required"`
	SessionID           string  `json:"session_id"`
	SeatIDs             []int64 `json:"seat_ids" binding:"required,min=1,dive,required"`
	PromoCode           string  `json:"promo_code"`
	AmountOverrideCents int64   `json:"amount_override_cents"`
}

type BookingSeatView struct {
	SeatID     int64 `json:"seat_id"`
	PriceCents int64 `json:"price_cents"`
}

type BookingResponse struct {
	BookingID  string            `json:"booking_id"`
	ScheduleID int64             `json:"schedule_id"`
	Status     string            `json:"status"`
	TotalCents int64             `json:"total_cents"`
	Seats      []BookingSeatView `json:"seats"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED REFUNDED"`
}

type CreateVenueRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateVenueResponse struct {
	VenueID int64 `json:"venue_id"`
}

type SeatInput struct {
	Row        string  `json:"row" binding:"required"`
	Number     int     `json:"number" binding:"required,gt=0"`
	Category   string  `json:"category" binding:"required,oneof=STANDARD PREMIUM VIP"`
	Multiplier float64 `json:"multiplier" binding:"required,gt=0"`
}

type BatchCreateSeatsRequest struct {
	Seats []SeatInput `json:"seats" binding:"required,min=1,dive"`
}

type GenerateLayoutRequest struct {
	Rows        int `json:"rows" binding:"required,gt=0"`
	SeatsPerRow int `json:"seats_per_row" binding:"required,gt=0"`
	PremiumRows int `json:"premium_rows"`
	VIPRows     int `json:"vip_rows"`
}

type GenerateLayoutResponse struct {
	Created int `json:"created"`
}

type UpdateSeatRequest struct {
	Category   string  `json:"category" binding:"required,oneof=STANDARD PREMIUM VIP"`
	Multiplier float64 `json:"multiplier" binding:"required,gt=0"`
}

type CreateShowRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateShowResponse struct {
	ShowID int64 `json:"show_id"`
}

type CreateScheduleRequest struct {
	ShowID         int64  `json:"show_id" binding:"required"`
	VenueID        int64  `json:"venue_id" binding:"required"`
	StartsAt       string `json:"starts_at" binding:"required"`
	EndsAt         string `json:"ends_at" binding:"required"`
	Allotment      int    `json:"allotment" binding:"required,gt=0"`
	BasePriceCents int64  `json:"base_price_cents" binding:"required,gt=0"`
}

type ScheduleResponse struct {
	ScheduleID     int64  `json:"schedule_id"`
	ShowID         int64  `json:"show_id"`
	VenueID        int64  `json:"venue_id"`
	TotalSeats     int    `json:"total_seats"`
	SeatsAvailable int    `json:"seats_available"`
	Status         string `json:"status"`
}

type CreatePromotionRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
	StartsAt      string  `json:"starts_at" binding:"required"`
	EndsAt        string  `json:"ends_at" binding:"required"`
	MaxUsage      int     `json:"max_usage"`
}

type CreatePromotionResponse struct {
	PromotionID int64 `json:"promotion_id"`
}

type ReconcileResponse struct {
	Reconciled int `json:"reconciled"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
