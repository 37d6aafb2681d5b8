package openrouter

import "errors"

var (
	// ErrMissingAPIKey is returned when a call is made without an API key
	ErrMissingAPIKey = errors.New("openrouter api key is required")
	// ErrRequestFailed is returned when an OpenRouter API request cannot be completed
	ErrRequestFailed = errors.New("openrouter request failed")
	// ErrRateLimited is returned when the API responds with HTTP 429
	ErrRateLimited = errors.New("openrouter rate limit exceeded")
	// ErrUnexpectedStatus is returned when the API responds with an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected openrouter response status")
	// ErrEmptyCompletion is returned when a completion response contains no choices
	ErrEmptyCompletion = errors.New("openrouter returned an empty completion")
)
