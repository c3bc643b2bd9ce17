package sportsapi

import "errors"

// Sentinel kinds for sports API errors.
var (
	ErrNotFound      = errors.New("sports api: resource not found")
	ErrUnexpected    = errors.New("sports api: unexpected response")
	ErrInvalidEntity = errors.New("sports api: invalid entity in response")
)
