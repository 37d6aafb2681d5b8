package openrouter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenlane/httpsling"
)

// completionsPath is the API path for the chat completions endpoint
const completionsPath = "chat/completions"

// Message is a single chat message in a completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the request body for a chat completion
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// completionResponse is the subset of the completion response the scorer needs
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// apiError is the error payload OpenRouter embeds in response bodies
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Complete sends a chat completion request with the given credential and
// returns the raw text of the first choice. A 429 response maps to
// ErrRateLimited so callers can rotate to another credential.
func (c *Client) Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	requester := httpsling.MustNew(
		httpsling.URL(fmt.Sprintf("%s/%s", c.baseURL, completionsPath)),
		httpsling.Post(),
		httpsling.BearerAuth(apiKey),
		httpsling.Body(req),
		httpsling.WithDoer(c.httpClient),
	)

	var completion completionResponse

	resp, err := requester.ReceiveWithContext(ctx, &completion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if completion.Error != nil {
		if completion.Error.Code == http.StatusTooManyRequests {
			return "", ErrRateLimited
		}

		return "", fmt.Errorf("%w: %s", ErrRequestFailed, completion.Error.Message)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}
