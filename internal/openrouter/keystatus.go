package openrouter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenlane/httpsling"
)

// keyStatusPath is the API path for the credential status endpoint
const keyStatusPath = "auth/key"

// KeyStatus describes the account state behind a single API key
type KeyStatus struct {
	// Label is the account-side name for the key
	Label string `json:"label"`
	// Usage is the credits consumed so far
	Usage float64 `json:"usage"`
	// Limit is the total credit limit, nil for unlimited keys
	Limit *float64 `json:"limit"`
	// LimitRemaining is the remaining credits, nil for unlimited keys
	LimitRemaining *float64 `json:"limit_remaining"`
	// RateLimitRequests is the number of requests allowed per interval
	RateLimitRequests int `json:"rate_limit_requests"`
	// RateLimitInterval is the rate limit window (e.g. "10s")
	RateLimitInterval string `json:"rate_limit_interval"`
}

// keyStatusResponse is the API envelope for the key status endpoint
type keyStatusResponse struct {
	Data struct {
		Label          string   `json:"label"`
		Usage          float64  `json:"usage"`
		Limit          *float64 `json:"limit"`
		LimitRemaining *float64 `json:"limit_remaining"`
		RateLimit      struct {
			Requests int    `json:"requests"`
			Interval string `json:"interval"`
		} `json:"rate_limit"`
	} `json:"data"`
}

// GetKeyStatus queries the account status endpoint for the given credential
func (c *Client) GetKeyStatus(ctx context.Context, apiKey string) (*KeyStatus, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	requester := httpsling.MustNew(
		httpsling.URL(fmt.Sprintf("%s/%s", c.baseURL, keyStatusPath)),
		httpsling.Method(http.MethodGet),
		httpsling.BearerAuth(apiKey),
		httpsling.WithDoer(c.httpClient),
	)

	var status keyStatusResponse

	resp, err := requester.ReceiveWithContext(ctx, &status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return &KeyStatus{
		Label:             status.Data.Label,
		Usage:             status.Data.Usage,
		Limit:             status.Data.Limit,
		LimitRemaining:    status.Data.LimitRemaining,
		RateLimitRequests: status.Data.RateLimit.Requests,
		RateLimitInterval: status.Data.RateLimit.Interval,
	}, nil
}
