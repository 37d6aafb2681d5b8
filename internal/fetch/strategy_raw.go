package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	// rawFetchTimeout is the hard timeout for the direct HTTP GET
	rawFetchTimeout = 15 * time.Second
	// rawFetchUserAgent identifies the service in direct fetches
	rawFetchUserAgent = "Mozilla/5.0 (compatible; PrivacyHub/1.0; +https://privacyhub.dev) privacy-policy-analyzer"
	// maxRawBodySize caps the response body read (2MB)
	maxRawBodySize = 2 * 1024 * 1024
)

var (
	// scriptBlockPattern strips script blocks including their content
	scriptBlockPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	// styleBlockPattern strips style blocks including their content
	styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	// htmlTagPattern strips all remaining markup
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	// rawTitlePattern extracts the page title before markup is stripped
	rawTitlePattern = regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`)
)

// RawHTTPStrategy retrieves content with a plain HTTP GET and regex-based
// markup stripping. It is the last-resort strategy.
type RawHTTPStrategy struct {
	httpClient *http.Client
}

// RawOption configures the RawHTTPStrategy
type RawOption func(*RawHTTPStrategy)

// WithRawHTTPClient sets a custom HTTP client for the raw fetch strategy
func WithRawHTTPClient(client *http.Client) RawOption {
	return func(s *RawHTTPStrategy) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewRawHTTPStrategy creates the raw HTTP retrieval strategy
func NewRawHTTPStrategy(opts ...RawOption) *RawHTTPStrategy {
	s := &RawHTTPStrategy{
		httpClient: &http.Client{Timeout: rawFetchTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name implements Strategy
func (s *RawHTTPStrategy) Name() string {
	return MethodRawHTTP
}

// Fetch implements Strategy
func (s *RawHTTPStrategy) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", rawFetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	html := string(body)
	title := extractRawTitle(html)
	text := stripMarkup(html)

	if len(text) < minStrategyContentLength {
		return nil, fmt.Errorf("%w: got %d chars", ErrContentTooShort, len(text))
	}

	return &Content{
		Title:   title,
		RawText: text,
		Method:  MethodRawHTTP,
	}, nil
}

// extractRawTitle pulls the page title out of raw HTML
func extractRawTitle(html string) string {
	match := rawTitlePattern.FindStringSubmatch(html)
	if len(match) < 2 {
		return ""
	}

	return collapseWhitespace(match[1])
}

// stripMarkup removes script and style blocks, strips all remaining tags,
// and collapses whitespace into single spaces.
func stripMarkup(html string) string {
	text := scriptBlockPattern.ReplaceAllString(html, " ")
	text = styleBlockPattern.ReplaceAllString(text, " ")
	text = htmlTagPattern.ReplaceAllString(text, " ")

	return collapseWhitespace(text)
}
