package reconcile

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrVenueNotFound    = errors.New("venue not found")
)
