package keyhealth

import "errors"

var (
	// ErrNilClient is returned when no status client is provided
	ErrNilClient = errors.New("status client is required")
	// ErrNoCredentialsConfigured is returned when the cache is created with no credentials
	ErrNoCredentialsConfigured = errors.New("no credentials configured")
)
