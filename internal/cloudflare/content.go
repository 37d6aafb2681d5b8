package cloudflare

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenlane/httpsling"
)

// contentRenderingPath is the API path for the browser rendering HTML endpoint
const contentRenderingPath = "browser-rendering/content"

// contentRequest is the request body for the content rendering endpoint
type contentRequest struct {
	URL            string       `json:"url"`
	GotoOptions    *gotoOptions `json:"gotoOptions,omitempty"`
	WaitForTimeout int          `json:"waitForTimeout,omitempty"`
}

// gotoOptions controls browser navigation behavior for the rendering session
type gotoOptions struct {
	// WaitUntil is the navigation readiness condition (e.g. networkidle2)
	WaitUntil string `json:"waitUntil"`
	// Timeout is the navigation timeout in milliseconds
	Timeout int `json:"timeout"`
}

// contentResponse is the Cloudflare API response wrapper for rendered HTML
type contentResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// RenderContent navigates a remote headless browser session to the given URL,
// waits for DOM readiness plus a fixed settle delay, and returns the fully
// rendered HTML. Cancellation of ctx aborts the request, which terminates the
// remote browser session rather than leaving it running.
func (c *Client) RenderContent(ctx context.Context, pageURL string) (string, error) {
	body := contentRequest{
		URL: pageURL,
		GotoOptions: &gotoOptions{
			WaitUntil: "networkidle2",
			Timeout:   browserNavigationTimeout,
		},
		WaitForTimeout: settleDelayMillis,
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.apiURL(contentRenderingPath)),
		httpsling.Post(),
		httpsling.BearerAuth(c.apiToken),
		httpsling.Body(body),
		httpsling.WithDoer(c.httpClient),
	)

	var cfResp contentResponse

	resp, err := requester.ReceiveWithContext(ctx, &cfResp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if !cfResp.Success || cfResp.Result == "" {
		return "", ErrRenderingFailed
	}

	return cfResp.Result, nil
}
