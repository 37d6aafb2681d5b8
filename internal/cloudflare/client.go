// Package cloudflare is a client for the Cloudflare Browser Rendering API,
// used as the headless-browser fallback strategy when the structured scrape
// cannot extract a policy (e.g. JS-rendered pages). The remote service owns
// the browser lifecycle; a session lives only for the duration of one request
// and is torn down by Cloudflare when the request completes or is canceled.
package cloudflare

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// defaultBaseURL is the root endpoint for the Cloudflare API
	defaultBaseURL = "https://api.cloudflare.com/client/v4"
	// defaultRequestTimeout is the default timeout for rendering requests.
	// Rendering a heavy SPA with the settle delay can take 20-30 seconds,
	// so this must comfortably exceed the navigation budget.
	defaultRequestTimeout = 45 * time.Second
	// browserNavigationTimeout is the browser-level navigation timeout in
	// milliseconds, controlling how long the session waits for the waitUntil
	// condition before giving up on the page.
	browserNavigationTimeout = 30000
	// settleDelayMillis is the fixed wait after DOM readiness before the
	// rendered HTML is captured, letting late client-side rendering finish.
	settleDelayMillis = 2000
)

// Client provides access to the Cloudflare Browser Rendering API
type Client struct {
	accountID  string
	apiToken   string
	httpClient *http.Client
	baseURL    string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Cloudflare client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default Cloudflare API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// New creates a new Cloudflare client with the provided account ID and API token
func New(accountID, apiToken string, opts ...Option) (*Client, error) {
	if accountID == "" {
		return nil, ErrMissingAccountID
	}

	if apiToken == "" {
		return nil, ErrMissingAPIToken
	}

	client := &Client{
		accountID:  accountID,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// apiURL constructs the full API URL for a given path under this account
func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("%s/accounts/%s/%s", c.baseURL, c.accountID, path)
}
