package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/seatwise/seatwise/internal/domain"
	redisrepo "github.com/seatwise/seatwise/internal/repository/redis"
	"github.com/seatwise/seatwise/internal/service"
	"github.com/seatwise/seatwise/internal/service/booking"
	"github.com/seatwise/seatwise/internal/service/catalog"
	"github.com/seatwise/seatwise/internal/service/promotion"
	"github.com/seatwise/seatwise/internal/service/reconcile"
	"github.com/seatwise/seatwise/internal/service/reservation"
	"github.com/seatwise/seatwise/internal/service/seatmap"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/shows/:show_id/schedules/:schedule_id/seatmap", handleGetSeatMap(svcs))

	r.POST("/schedules/:id/reservations", handleCreateReservations(svcs))
	r.GET("/schedules/:id/seats/:seat_id/reserved", handleIsReserved(svcs))
	r.GET("/sessions/:session_id/reservations", handleListSessionReservations(svcs))
	r.DELETE("/sessions/:session_id/reservations", handleReleaseSession(svcs))

	r.POST("/bookings", handleCreateBooking(svcs, idem))
	r.GET("/bookings/:id", handleGetBooking(svcs))
	r.PATCH("/bookings/:id/status", handleUpdateBookingStatus(svcs))

	// Admin API
	// TODO: add admin middleware
	admin := r.Group("/admin")
	{
		admin.POST("/venues", handleCreateVenue(svcs))
		admin.POST("/venues/:id/seats", handleBatchCreateSeats(svcs))
		admin.POST("/venues/:id/layout", handleGenerateLayout(svcs))
		admin.PATCH("/seats/:id", handleUpdateSeat(svcs))
		admin.POST("/shows", handleCreateShow(svcs))
		admin.POST("/schedules", handleCreateSchedule(svcs))
		admin.POST("/schedules/:id/archive", handleArchiveSchedule(svcs))
		admin.POST("/schedules/:id/reconcile", handleReconcileSchedule(svcs))
		admin.POST("/venues/:id/reconcile", handleReconcileVenue(svcs))
		admin.POST("/reconcile", handleReconcileAll(svcs))
		admin.POST("/promotions", handleCreatePromotion(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Get seat map
// @Param    show_id      path  int  true  "Show ID"
// @Param    schedule_id  path  int  true  "Schedule ID"
// @Success  200  {object}  domain.SeatMap
// @Failure  404  {object}  ErrorResponse
// @Router   /shows/{show_id}/schedules/{schedule_id}/seatmap [get]
func handleGetSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		showID, ok := parseInt64Param(c, "show_id")
		if !ok {
			return
		}
		scheduleID, ok := parseInt64Param(c, "schedule_id")
		if !ok {
			return
		}
		sm, err := svcs.SeatMap.Build(c.Request.Context(), showID, scheduleID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s; the server-side cache holds the map
		// for longer, the edge only briefly
		writeJSONWithCache(c, http.StatusOK, sm, "public, max-age=15", true)
	}
}

// @Summary  Reserve seats (best effort)
// @Param    id   path  int  true  "Schedule ID"
// @Param    req  body  CreateReservationRequest  true  "payload"
// @Success  201  {object}  CreateReservationResponse
// @Failure  400  {object}  ErrorResponse
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "schedule archived"
// @Failure  429  {object}  ErrorResponse "rate limited"
// @Router   /schedules/{id}/reservations [post]
func handleCreateReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ttl := time.Duration(req.TTLSec) * time.Second
		rlKey := "ip:" + c.ClientIP()

		created, err := svcs.Reservation.Reserve(
			c.Request.Context(),
			scheduleID,
			req.SeatIDs,
			req.UserID,
			req.SessionID,
			ttl,
			rlKey,
		)
		if err != nil {
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := CreateReservationResponse{
			Requested:    len(req.SeatIDs),
			Reserved:     len(created),
			Reservations: make([]ReservationView, 0, len(created)),
		}
		for _, h := range created {
			resp.Reservations = append(resp.Reservations, ReservationView{
				ID:         h.ID.String(),
				ScheduleID: h.ScheduleID,
				SeatID:     h.SeatID,
				ExpiresAt:  h.ExpiresAt,
			})
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Check whether a seat is actively held
// @Param    id       path  int  true  "Schedule ID"
// @Param    seat_id  path  int  true  "Seat ID"
// @Success  200  {object}  IsReservedResponse
// @Router   /schedules/{id}/seats/{seat_id}/reserved [get]
func handleIsReserved(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		seatID, ok := parseInt64Param(c, "seat_id")
		if !ok {
			return
		}
		reserved, err := svcs.Reservation.IsReserved(c.Request.Context(), seatID, scheduleID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, IsReservedResponse{Reserved: reserved})
	}
}

// @Summary  List session reservations
// @Param    session_id  path  string  true  "Session ID"
// @Success  200  {array}  ReservationView
// @Router   /sessions/{session_id}/reservations [get]
func handleListSessionReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		holds, err := svcs.Reservation.ActiveReservations(c.Request.Context(), sessionID)
		if err != nil {
			respondErr(c, err)
			return
		}
		out := make([]ReservationView, 0, len(holds))
		for _, h := range holds {
			out = append(out, ReservationView{
				ID:         h.ID.String(),
				ScheduleID: h.ScheduleID,
				SeatID:     h.SeatID,
				ExpiresAt:  h.ExpiresAt,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Release session reservations
// @Param    session_id  path  string  true  "Session ID"
// @Success  200  {object}  ReleaseSessionResponse
// @Router   /sessions/{session_id}/reservations [delete]
func handleReleaseSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		n, err := svcs.Reservation.Release(c.Request.Context(), sessionID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ReleaseSessionResponse{SchedulesReleased: n})
	}
}

// @Summary  Create booking (idempotent)
// @Param    req  body  CreateBookingRequest  true  "payload"
// @Header   201  {string}  Idempotency-Key  "echo"
// @Success  201  {object}  BookingResponse
// @Failure  400  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "seats unavailable / idem in progress"
// @Router   /bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(req.ScheduleID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		result, err := svcs.Booking.Create(c.Request.Context(), booking.CreateParams{
			ScheduleID:          req.ScheduleID,
			UserID:              req.UserID,
			SeatIDs:             req.SeatIDs,
			SessionID:           req.SessionID,
			PromoCode:           req.PromoCode,
			AmountOverrideCents: req.AmountOverrideCents,
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := toBookingResponse(result)

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get booking with seats
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200  {object}  BookingResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid booking id")
			return
		}
		b, err := svcs.Booking.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// @Summary  Update booking status
// @Param    id   path  string  true  "Booking ID (uuid)"
// @Param    req  body  UpdateBookingStatusRequest  true  "payload"
// @Success  200  {object}  BookingResponse
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse "transition not allowed"
// @Router   /bookings/{id}/status [patch]
func handleUpdateBookingStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid booking id")
			return
		}
		var req UpdateBookingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		b, err := svcs.Booking.UpdateStatus(
			c.Request.Context(),
			id,
			domain.BookingStatus(req.Status),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, BookingResponse{
			BookingID:  b.ID.String(),
			ScheduleID: b.ScheduleID,
			Status:     string(b.Status),
			TotalCents: b.TotalCents,
		})
	}
}

// @Summary  Create venue
// @Param    req  body  CreateVenueRequest  true  "payload"
// @Success  201  {object}  CreateVenueResponse
// @Router   /admin/venues [post]
func handleCreateVenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVenueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateVenue(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateVenueResponse{VenueID: id})
	}
}

// @Summary  Batch create seats
// @Param    id   path  int  true  "Venue ID"
// @Param    req  body  BatchCreateSeatsRequest  true  "payload"
// @Success  201  {object}  map[string]int
// @Router   /admin/venues/{id}/seats [post]
func handleBatchCreateSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req BatchCreateSeatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var seats []domain.Seat
		for _, s := range req.Seats {
			seats = append(seats, domain.Seat{
				VenueID:         venueID,
				Row:             s.Row,
				Number:          s.Number,
				Category:        domain.SeatCategory(s.Category),
				PriceMultiplier: s.Multiplier,
			})
		}
		if err := svcs.Catalog.AddSeats(c.Request.Context(), venueID, seats); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"created": len(seats)})
	}
}

// @Summary  Generate rectangular seat layout
// @Param    id   path  int  true  "Venue ID"
// @Param    req  body  GenerateLayoutRequest  true  "payload"
// @Success  201  {object}  GenerateLayoutResponse
// @Router   /admin/venues/{id}/layout [post]
func handleGenerateLayout(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req GenerateLayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		n, err := svcs.Catalog.GenerateLayout(c.Request.Context(), venueID, catalog.LayoutParams{
			Rows:        req.Rows,
			SeatsPerRow: req.SeatsPerRow,
			PremiumRows: req.PremiumRows,
			VIPRows:     req.VIPRows,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, GenerateLayoutResponse{Created: n})
	}
}

// @Summary  Update seat category and multiplier
// @Param    id   path  int  true  "Seat ID"
// @Param    req  body  UpdateSeatRequest  true  "payload"
// @Success  204
// @Router   /admin/seats/{id} [patch]
func handleUpdateSeat(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		seatID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateSeatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Catalog.UpdateSeat(
			c.Request.Context(),
			seatID,
			domain.SeatCategory(req.Category),
			req.Multiplier,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create show
// @Param    req  body  CreateShowRequest  true  "payload"
// @Success  201  {object}  CreateShowResponse
// @Router   /admin/shows [post]
func handleCreateShow(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateShow(c.Request.Context(), req.Title)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateShowResponse{ShowID: id})
	}
}

// @Summary  Create schedule
// @Param    req  body  CreateScheduleRequest  true  "payload"
// @Success  201  {object}  ScheduleResponse
// @Router   /admin/schedules [post]
func handleCreateSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		ends, err := parseRFC3339(req.EndsAt)
		if err != nil {
			badRequest(c, "invalid ends_at (RFC3339)")
			return
		}
		sched, err := svcs.Catalog.CreateSchedule(
			c.Request.Context(),
			req.ShowID,
			req.VenueID,
			starts,
			ends,
			req.Allotment,
			req.BasePriceCents,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, toScheduleResponse(sched))
	}
}

// @Summary  Archive schedule
// @Param    id  path  int  true  "Schedule ID"
// @Success  204
// @Router   /admin/schedules/{id}/archive [post]
func handleArchiveSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Catalog.ArchiveSchedule(c.Request.Context(), scheduleID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Reconcile one schedule
// @Param    id  path  int  true  "Schedule ID"
// @Success  200  {object}  ScheduleResponse
// @Router   /admin/schedules/{id}/reconcile [post]
func handleReconcileSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		sched, err := svcs.Catalog.Reconcile(c.Request.Context(), scheduleID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toScheduleResponse(sched))
	}
}

// @Summary  Reconcile every schedule of a venue
// @Param    id  path  int  true  "Venue ID"
// @Success  200  {object}  ReconcileResponse
// @Router   /admin/venues/{id}/reconcile [post]
func handleReconcileVenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		n, err := svcs.Reconcile.Venue(c.Request.Context(), venueID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ReconcileResponse{Reconciled: n})
	}
}

// @Summary  Reconcile every schedule
// @Success  200  {object}  ReconcileResponse
// @Router   /admin/reconcile [post]
func handleReconcileAll(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svcs.Catalog.ReconcileAll(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ReconcileResponse{Reconciled: n})
	}
}

// @Summary  Create promotion
// @Param    req  body  CreatePromotionRequest  true  "payload"
// @Success  201  {object}  CreatePromotionResponse
// @Router   /admin/promotions [post]
func handleCreatePromotion(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePromotionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		ends, err := parseRFC3339(req.EndsAt)
		if err != nil {
			badRequest(c, "invalid ends_at (RFC3339)")
			return
		}
		id, err := svcs.Promotion.Create(c.Request.Context(), domain.Promotion{
			Code:          req.Code,
			DiscountType:  domain.DiscountType(req.DiscountType),
			DiscountValue: req.DiscountValue,
			StartsAt:      starts,
			EndsAt:        ends,
			MaxUsage:      req.MaxUsage,
			Active:        true,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatePromotionResponse{PromotionID: id})
	}
}

// --- Helpers ---

func toBookingResponse(b *domain.BookingWithSeats) BookingResponse {
	resp := BookingResponse{
		BookingID:  b.Booking.ID.String(),
		ScheduleID: b.Booking.ScheduleID,
		Status:     string(b.Booking.Status),
		TotalCents: b.Booking.TotalCents,
		Seats:      make([]BookingSeatView, 0, len(b.Seats)),
	}
	for _, sb := range b.Seats {
		resp.Seats = append(resp.Seats, BookingSeatView{
			SeatID:     sb.SeatID,
			PriceCents: sb.PriceCents,
		})
	}
	return resp
}

func toScheduleResponse(s *domain.ShowSchedule) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:     s.ID,
		ShowID:         s.ShowID,
		VenueID:        s.VenueID,
		TotalSeats:     s.TotalSeats,
		SeatsAvailable: s.SeatsAvailable,
		Status:         string(s.Status),
	}
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// catalog service
	case errors.Is(err, catalog.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "venue not found"})
		return
	case errors.Is(err, catalog.ErrSeatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seat not found"})
		return
	case errors.Is(err, catalog.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "schedule not found"})
		return
	case errors.Is(err, catalog.ErrInvalidLayout):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid layout dimensions"})
		return
	// reconcile service
	case errors.Is(err, reconcile.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "schedule not found"})
		return
	case errors.Is(err, reconcile.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "venue not found"})
		return
	// reservation service
	case errors.Is(err, reservation.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "schedule not found"})
		return
	case errors.Is(err, reservation.ErrScheduleArchived):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "schedule is archived"})
		return
	case errors.Is(err, reservation.ErrNoSeatsSelected):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no seats selected"})
		return
	case errors.Is(err, reservation.ErrSeatsNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seats not found"})
		return
	// seatmap service
	case errors.Is(err, seatmap.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "schedule not found"})
		return
	case errors.Is(err, seatmap.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "venue not found"})
		return
	// booking service
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	case errors.Is(err, booking.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "schedule not found"})
		return
	case errors.Is(err, booking.ErrScheduleArchived):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "schedule is archived"})
		return
	case errors.Is(err, booking.ErrNoSeatsSelected):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no seats selected"})
		return
	case errors.Is(err, booking.ErrSeatsNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "seats not found"})
		return
	case errors.Is(err, booking.ErrSeatsUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seats unavailable"})
		return
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "status transition not allowed"})
		return
	// promotion service
	case errors.Is(err, promotion.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "promotion not found"})
		return
	case errors.Is(err, promotion.ErrInactive),
		errors.Is(err, promotion.ErrNotInWindow),
		errors.Is(err, promotion.ErrExhausted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "promotion not applicable"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
