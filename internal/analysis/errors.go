package analysis

import "errors"

var (
	// ErrInvalidURL is returned when the submitted URL fails validation
	ErrInvalidURL = errors.New("invalid URL")
)
