package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrInvalidSpecifiers = errors.New("invalid specifiers")
)
