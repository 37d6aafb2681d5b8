// Package openrouter is a client for the OpenRouter chat-completion API used
// as the scoring service, plus its key-status endpoint used for credential
// health monitoring. The client is credential-agnostic: the API key is passed
// per call so the scorer can rotate between configured keys.
package openrouter

import (
	"net/http"
	"time"
)

const (
	// defaultBaseURL is the root endpoint for the OpenRouter API
	defaultBaseURL = "https://openrouter.ai/api/v1"
	// defaultRequestTimeout bounds a single completion call. Scoring a full
	// policy produces ~2000 tokens, which slower models need time for.
	defaultRequestTimeout = 60 * time.Second
)

// Client provides access to the OpenRouter API
type Client struct {
	httpClient *http.Client
	baseURL    string
	siteURL    string
	siteName   string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the OpenRouter client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default OpenRouter API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithSiteIdentity sets the referer URL and application title OpenRouter
// expects in outbound headers for attribution.
func WithSiteIdentity(siteURL, siteName string) Option {
	return func(c *Client) {
		c.siteURL = siteURL
		c.siteName = siteName
	}
}

// New creates a new OpenRouter client
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.siteURL != "" || client.siteName != "" {
		client.httpClient = withIdentityHeaders(client.httpClient, client.siteURL, client.siteName)
	}

	return client
}

// identityTransport injects the OpenRouter attribution headers on every request
type identityTransport struct {
	base     http.RoundTripper
	siteURL  string
	siteName string
}

// RoundTrip implements http.RoundTripper
func (t *identityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.siteURL != "" {
		clone.Header.Set("HTTP-Referer", t.siteURL)
	}

	if t.siteName != "" {
		clone.Header.Set("X-Title", t.siteName)
	}

	return t.base.RoundTrip(clone)
}

// withIdentityHeaders wraps an HTTP client so all requests carry the
// attribution headers without each call site repeating them.
func withIdentityHeaders(client *http.Client, siteURL, siteName string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = &identityTransport{base: base, siteURL: siteURL, siteName: siteName}

	return &wrapped
}
