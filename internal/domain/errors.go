package domain

import "errors"

// ErrInvalidHost is returned when a hostname cannot be parsed into a registrable domain
var ErrInvalidHost = errors.New("invalid hostname")
