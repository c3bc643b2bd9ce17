package repository

import "errors"

// Sentinel kinds for name store errors.
var (
	ErrNotFound     = errors.New("event has no rendered names")
	ErrInvalidEntry = errors.New("invalid rendered name")
)
