package catalogue

import "errors"

// Sentinel kinds for catalogue errors.
var (
	ErrNotFound = errors.New("market description not found")
	ErrInvalid  = errors.New("invalid catalogue")
)
