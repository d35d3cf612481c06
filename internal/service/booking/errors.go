package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleArchived  = errors.New("schedule is archived")
	ErrNoSeatsSelected   = errors.New("no seats selected")
	ErrSeatsNotFound     = errors.New("one or more seats do not exist for the venue")
	ErrSeatsUnavailable  = errors.New("one or more seats are no longer available")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
)
