package catalog

import "errors"

var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidLayout    = errors.New("invalid layout dimensions")
)
