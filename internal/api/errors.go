package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrURLRequired is returned when the analyze request carries no URL
	ErrURLRequired = errors.New("url is required")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrCreditsNotConfigured is returned when no credential cache is wired in
	ErrCreditsNotConfigured = errors.New("credential status reporting not configured")
)
