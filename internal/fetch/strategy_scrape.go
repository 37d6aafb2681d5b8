package fetch

import (
	"context"
	"fmt"

	"github.com/alokemajumder/privacyhub-sub000/internal/firecrawl"
)

// ScrapeClient is the subset of the Firecrawl client the strategy needs
type ScrapeClient interface {
	Scrape(ctx context.Context, pageURL string) (*firecrawl.Document, error)
}

// StructuredScrapeStrategy retrieves content through the Firecrawl content
// extraction API, requesting main content only as markdown.
type StructuredScrapeStrategy struct {
	client ScrapeClient
}

// NewStructuredScrapeStrategy creates the structured-scrape retrieval strategy
func NewStructuredScrapeStrategy(client ScrapeClient) *StructuredScrapeStrategy {
	if client == nil {
		return nil
	}

	return &StructuredScrapeStrategy{client: client}
}

// Name implements Strategy
func (s *StructuredScrapeStrategy) Name() string {
	return MethodStructuredScrape
}

// Fetch implements Strategy
func (s *StructuredScrapeStrategy) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	doc, err := s.client.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	text := collapseWhitespace(doc.Markdown)
	if len(text) < minStrategyContentLength {
		return nil, fmt.Errorf("%w: got %d chars", ErrContentTooShort, len(text))
	}

	return &Content{
		Title:   doc.Title,
		RawText: text,
		Method:  MethodStructuredScrape,
	}, nil
}
