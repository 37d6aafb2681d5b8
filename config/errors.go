package config

import "errors"

var (
	// ErrMissingScoringCredentials is returned when no scoring-service API key is configured
	ErrMissingScoringCredentials = errors.New("missing scoring service credentials")
	// ErrIncompleteCloudflareConfig is returned when only one of the Cloudflare settings is present
	ErrIncompleteCloudflareConfig = errors.New("incomplete cloudflare configuration")
)
