package promotion

import "errors"

var (
	ErrNotFound    = errors.New("promotion not found")
	ErrInactive    = errors.New("promotion is not active")
	ErrNotInWindow = errors.New("promotion is outside its validity window")
	ErrExhausted   = errors.New("promotion usage cap reached")
)
