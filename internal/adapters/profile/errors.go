package profile

import "errors"

// Sentinel kinds for profile errors.
var (
	ErrFetch   = errors.New("profile fetch failed")
	ErrUnknown = errors.New("profile unknown")
)
