package firecrawl

import "errors"

var (
	// ErrMissingAPIKey is returned when the client is constructed without an API key
	ErrMissingAPIKey = errors.New("firecrawl api key is required")
	// ErrRequestFailed is returned when the scrape request cannot be completed
	ErrRequestFailed = errors.New("firecrawl request failed")
	// ErrUnexpectedStatus is returned when the API responds with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected firecrawl response status")
	// ErrScrapeFailed is returned when the API reports an unsuccessful scrape
	ErrScrapeFailed = errors.New("firecrawl scrape failed")
	// ErrUnexpectedEnvelope is returned when the response matches neither known envelope shape
	ErrUnexpectedEnvelope = errors.New("unrecognized firecrawl response envelope")
)
