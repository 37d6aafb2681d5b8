package slack

import (
	"net/http"
	"time"
)

const (
	// defaultRequestTimeout is the default timeout for Slack webhook requests
	defaultRequestTimeout = 10 * time.Second
	// defaultServiceName labels notifications when no name is configured
	defaultServiceName = "PrivacyHub"
)

// Client sends analysis notifications to Slack via incoming webhooks
type Client struct {
	webhookURL  string
	serviceName string
	httpClient  *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Slack client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithServiceName sets the service name used in notification headers
func WithServiceName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.serviceName = name
		}
	}
}

// New creates a new Slack webhook client
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL:  webhookURL,
		serviceName: defaultServiceName,
		httpClient:  &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}
