// Package urlcheck normalizes and validates user-supplied URL input before it
// enters the analysis pipeline.
package urlcheck

import (
	"net/url"
	"strings"
)

// Result holds the outcome of validating a user-supplied URL string.
// Validation failures are reported as data rather than errors so callers can
// surface the message directly to the user.
type Result struct {
	// Valid indicates whether the input passed validation
	Valid bool `json:"valid"`
	// URL is the normalized absolute URL when validation succeeds
	URL string `json:"url,omitempty"`
	// Error is a user-facing message when validation fails
	Error string `json:"error,omitempty"`
}

// Validate checks a raw user-supplied string and returns a normalized
// https:// URL. A bare domain is accepted and prefixed with https://; a path
// is only accepted when an explicit http(s) scheme is present. Any
// whitespace, including surrounding whitespace, is rejected rather than
// trimmed.
func Validate(input string) Result {
	if input == "" {
		return invalid("URL is required")
	}

	if strings.ContainsAny(input, " \t\n\r") {
		return invalid("URL must not contain whitespace")
	}

	trimmed := input

	hasScheme := strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")

	if !hasScheme {
		if strings.Contains(trimmed, "://") {
			return invalid("only http and https URLs are supported")
		}

		// A lone trailing slash is not a path
		trimmed = strings.TrimSuffix(trimmed, "/")

		// A path without a scheme is ambiguous; require the caller to be explicit
		if strings.Contains(trimmed, "/") {
			return invalid("URLs with a path must start with http:// or https://")
		}

		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return invalid("invalid URL format")
	}

	if !strings.Contains(parsed.Hostname(), ".") {
		return invalid("URL must include a valid domain")
	}

	return Result{
		Valid: true,
		URL:   strings.TrimSuffix(trimmed, "/"),
	}
}

// invalid builds a failed validation result with the given message
func invalid(msg string) Result {
	return Result{Valid: false, Error: msg}
}
