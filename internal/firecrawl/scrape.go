package firecrawl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/theopenlane/httpsling"
)

// scrapePath is the API path for the synchronous scrape endpoint
const scrapePath = "v1/scrape"

// Document holds the extracted main content of a scraped page
type Document struct {
	// Markdown is the page's main content rendered as markdown
	Markdown string `json:"markdown"`
	// Title is the page title reported in scrape metadata
	Title string `json:"title"`
	// SourceURL is the final URL the content was extracted from
	SourceURL string `json:"source_url"`
}

// scrapeRequest is the request body for the scrape endpoint
type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

// scrapeMetadata carries page metadata in either envelope shape
type scrapeMetadata struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceURL"`
}

// scrapePayload is the inner document shape shared by both envelopes
type scrapePayload struct {
	Markdown string          `json:"markdown"`
	Metadata *scrapeMetadata `json:"metadata"`
}

// scrapeEnvelope tolerates the two response shapes the API has shipped:
// the current one nests the document under "data", the legacy one inlines
// markdown and metadata at the top level.
type scrapeEnvelope struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	Data     json.RawMessage `json:"data"`
	Markdown string          `json:"markdown"`
	Metadata *scrapeMetadata `json:"metadata"`
}

// Scrape fetches the given URL through the Firecrawl API and returns its
// main content as markdown.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*Document, error) {
	body := scrapeRequest{
		URL:             pageURL,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
	}

	requester := httpsling.MustNew(
		httpsling.URL(fmt.Sprintf("%s/%s", c.baseURL, scrapePath)),
		httpsling.Post(),
		httpsling.BearerAuth(c.apiKey),
		httpsling.Body(body),
		httpsling.WithDoer(c.httpClient),
	)

	var envelope scrapeEnvelope

	resp, err := requester.ReceiveWithContext(ctx, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if !envelope.Success {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrScrapeFailed, envelope.Error)
		}

		return nil, ErrScrapeFailed
	}

	return parseEnvelope(envelope)
}

// parseEnvelope extracts the document from whichever envelope shape matched.
// The nested "data" shape is attempted first, then the legacy flat shape;
// neither matching is a hard error rather than a silent empty result.
func parseEnvelope(envelope scrapeEnvelope) (*Document, error) {
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		var payload scrapePayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedEnvelope, err)
		}

		if payload.Markdown != "" {
			return documentFromPayload(payload), nil
		}
	}

	if envelope.Markdown != "" {
		return documentFromPayload(scrapePayload{
			Markdown: envelope.Markdown,
			Metadata: envelope.Metadata,
		}), nil
	}

	return nil, ErrUnexpectedEnvelope
}

// documentFromPayload maps the shared payload shape into a Document
func documentFromPayload(payload scrapePayload) *Document {
	doc := &Document{Markdown: payload.Markdown}

	if payload.Metadata != nil {
		doc.Title = payload.Metadata.Title
		doc.SourceURL = payload.Metadata.SourceURL
	}

	return doc
}
