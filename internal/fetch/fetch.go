// Package fetch locates and retrieves privacy policy text. Retrieval tries
// three strategies in strict priority order: the structured scraping service,
// a headless-browser crawl, and a raw HTTP fetch. Each strategy is fully
// isolated from the others' failures; a later strategy only starts after the
// previous one has definitively failed.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// Retrieval method names recorded on fetched content
const (
	// MethodStructuredScrape identifies content obtained from the scraping service
	MethodStructuredScrape = "structured-scrape"
	// MethodHeadlessBrowser identifies content obtained via browser rendering
	MethodHeadlessBrowser = "headless-browser"
	// MethodRawHTTP identifies content obtained by direct HTTP fetch
	MethodRawHTTP = "raw-http"
)

// minStrategyContentLength is the minimum text length for any strategy to
// report success; shorter extractions fall through to the next strategy.
const minStrategyContentLength = 100

// Content is the text retrieved for a single analysis attempt. It is owned by
// the pipeline invocation that produced it and is not persisted.
type Content struct {
	// URL is the policy URL the content was fetched from
	URL string
	// Title is the page title, when the strategy could determine one
	Title string
	// RawText is the extracted policy text
	RawText string
	// Hostname is the host the content came from
	Hostname string
	// Method is which retrieval strategy produced the content
	Method string
}

// Strategy is a single content retrieval approach. Implementations must
// respect ctx cancellation and release any resources they acquire on every
// exit path before returning.
type Strategy interface {
	// Name identifies the strategy in logs and failure reports
	Name() string
	// Fetch retrieves the content of the given URL
	Fetch(ctx context.Context, pageURL string) (*Content, error)
}

// Fetcher runs retrieval strategies in priority order
type Fetcher struct {
	strategies []Strategy
}

// NewFetcher creates a fetcher that tries the given strategies in order.
// Strategies whose dependencies are unconfigured may be omitted; at least one
// is required.
func NewFetcher(strategies ...Strategy) (*Fetcher, error) {
	var active []Strategy

	for _, s := range strategies {
		if s != nil {
			active = append(active, s)
		}
	}

	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no retrieval strategies configured", ErrExtractionFailed)
	}

	return &Fetcher{strategies: active}, nil
}

// Fetch retrieves the content of pageURL using the first strategy that
// succeeds. Strategy failures are converted to fallthrough locally; only
// exhaustion of every strategy surfaces an error, which names the strategies
// that were attempted.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, ErrInvalidURL
	}

	var attempted []string

	for _, strategy := range f.strategies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		attempted = append(attempted, strategy.Name())

		content, err := strategy.Fetch(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("strategy", strategy.Name()).Str("url", pageURL).Msg("retrieval strategy failed, falling through")
			continue
		}

		if len(content.RawText) < minStrategyContentLength {
			log.Warn().Str("strategy", strategy.Name()).Str("url", pageURL).Int("length", len(content.RawText)).Msg("extracted content below minimum length, falling through")
			continue
		}

		content.URL = pageURL
		content.Hostname = parsed.Hostname()

		log.Info().Str("strategy", strategy.Name()).Str("url", pageURL).Int("length", len(content.RawText)).Msg("content retrieved")

		return content, nil
	}

	// A deadline that expired inside the last strategy must surface as the
	// timeout it is, not as strategy exhaustion.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: attempted strategies: %s", ErrExtractionFailed, strings.Join(attempted, ", "))
}

// collapseWhitespace reduces all whitespace runs to single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
