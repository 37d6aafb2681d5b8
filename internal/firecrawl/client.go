// Package firecrawl is a client for the Firecrawl content extraction API,
// used as the preferred strategy for retrieving privacy policy text.
package firecrawl

import (
	"net/http"
	"time"
)

const (
	// defaultBaseURL is the root endpoint for the Firecrawl API
	defaultBaseURL = "https://api.firecrawl.dev"
	// defaultRequestTimeout bounds a single scrape call; when it elapses the
	// strategy falls through to the browser crawl.
	defaultRequestTimeout = 15 * time.Second
)

// Client provides access to the Firecrawl scrape API
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Firecrawl client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default Firecrawl API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// New creates a new Firecrawl client with the provided API key
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}
