package fetch

import (
	"fmt"
	"strings"
)

const (
	// MinPolicyLength is the minimum plausible policy length for content
	// obtained by the browser or raw HTTP strategies.
	MinPolicyLength = 500
	// MinStructuredPolicyLength is the lower minimum for the structured
	// scrape, which already isolates main content and so produces denser text.
	MinStructuredPolicyLength = 100
)

// policyKeywords is the fixed keyword set at least one of which must appear
// in text for it to plausibly be a privacy policy.
var policyKeywords = []string{
	"privacy",
	"personal information",
	"data collection",
	"cookies",
	"third party",
}

// ValidatePolicyText confirms that fetched text plausibly represents a
// privacy policy. Failures return ErrInvalidContent, distinct from fetch
// failures, so callers can report "this doesn't look like a policy" rather
// than "couldn't reach the page".
func ValidatePolicyText(content *Content) error {
	if content == nil || content.RawText == "" {
		return fmt.Errorf("%w: no content", ErrInvalidContent)
	}

	minLength := MinPolicyLength
	if content.Method == MethodStructuredScrape {
		minLength = MinStructuredPolicyLength
	}

	if len(content.RawText) < minLength {
		return fmt.Errorf("%w: only %d characters extracted (minimum %d)", ErrInvalidContent, len(content.RawText), minLength)
	}

	lowered := strings.ToLower(content.RawText)

	for _, keyword := range policyKeywords {
		if strings.Contains(lowered, keyword) {
			return nil
		}
	}

	return fmt.Errorf("%w: no privacy-related keywords found", ErrInvalidContent)
}
