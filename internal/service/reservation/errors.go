package reservation

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleArchived = errors.New("schedule is archived")
	ErrNoSeatsSelected  = errors.New("no seats selected")
	ErrSeatsNotFound    = errors.New("one or more seats do not exist for the venue")
)
