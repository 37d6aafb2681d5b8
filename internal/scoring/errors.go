package scoring

import "errors"

var (
	// ErrNoCredentials is returned when no scoring-service credential is available
	ErrNoCredentials = errors.New("no scoring service credentials available")
	// ErrEmptyPolicy is returned when there is no policy text to score
	ErrEmptyPolicy = errors.New("policy text is empty")
	// ErrParse is returned when the scoring service response cannot be parsed
	// into the expected structure, including after the single retry.
	ErrParse = errors.New("scoring response could not be parsed")
	// ErrNoJSONObject is returned when no JSON object can be located in response text
	ErrNoJSONObject = errors.New("no JSON object found in response")
	// ErrMissingCategory is returned when a required rubric category is absent from a response
	ErrMissingCategory = errors.New("missing rubric category in response")
	// ErrInvalidScore is returned when a category score is outside the 1-10 range
	ErrInvalidScore = errors.New("category score out of range")
)
