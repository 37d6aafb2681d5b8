package fetch

import "errors"

var (
	// ErrInvalidURL is returned when the fetch target is empty or malformed
	ErrInvalidURL = errors.New("invalid fetch target")
	// ErrDiscoveryFailed is returned when no policy URL could be located for a domain
	ErrDiscoveryFailed = errors.New("no privacy policy URL could be located")
	// ErrExtractionFailed is returned when every retrieval strategy has been exhausted
	ErrExtractionFailed = errors.New("content extraction failed")
	// ErrInvalidContent is returned when fetched text does not look like a privacy policy
	ErrInvalidContent = errors.New("content does not appear to be a privacy policy")
	// ErrContentTooShort is returned by a strategy when extracted text is below its minimum
	ErrContentTooShort = errors.New("extracted content too short")
)
