package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
)

const (
	// defaultModel is the scoring model requested from OpenRouter
	defaultModel = "anthropic/claude-3.5-sonnet"
	// scoringTemperature keeps the service deterministic-leaning
	scoringTemperature = 0.1
	// scoringMaxTokens budgets for the full structured response
	scoringMaxTokens = 2000
)

// Credential is one scoring-service API key plus its display name. The name
// is a label ("key-1"), never the key value, and is the only part that may
// appear in logs.
type Credential struct {
	Name string
	Key  string
}

// CredentialProvider supplies available credentials in preference order and
// accepts rate-limit feedback so exhausted credentials are skipped.
type CredentialProvider interface {
	// Credentials returns currently available credentials in preference order
	Credentials(ctx context.Context) ([]Credential, error)
	// MarkRateLimited records that a credential hit the service rate limit
	MarkRateLimited(name string)
}

// CompletionService is the subset of the OpenRouter client the scorer needs
type CompletionService interface {
	Complete(ctx context.Context, apiKey string, req openrouter.CompletionRequest) (string, error)
}

// Scorer transforms validated policy text into category scores via the
// scoring service.
type Scorer struct {
	service     CompletionService
	credentials CredentialProvider
	model       string
}

// ScorerOption configures the Scorer
type ScorerOption func(*Scorer)

// WithModel overrides the scoring model
func WithModel(model string) ScorerOption {
	return func(s *Scorer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewScorer creates a policy scorer backed by the given completion service
// and credential provider.
func NewScorer(service CompletionService, credentials CredentialProvider, opts ...ScorerOption) (*Scorer, error) {
	if service == nil {
		return nil, errors.New("completion service is required")
	}

	if credentials == nil {
		return nil, ErrNoCredentials
	}

	scorer := &Scorer{
		service:     service,
		credentials: credentials,
		model:       defaultModel,
	}

	for _, opt := range opts {
		opt(scorer)
	}

	return scorer, nil
}

// Score prompts the scoring service with the rubric and policy text and
// returns its validated structured response. A rate-limited credential is
// marked and the next available one is tried; a parse failure is retried
// once against the same credential and is terminal after that.
func (s *Scorer) Score(ctx context.Context, policyText string) (*ScoredPolicy, error) {
	if policyText == "" {
		return nil, ErrEmptyPolicy
	}

	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting credential: %w", err)
	}

	if len(creds) == 0 {
		return nil, ErrNoCredentials
	}

	req := openrouter.CompletionRequest{
		Model: s.model,
		Messages: []openrouter.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(policyText)},
		},
		Temperature: scoringTemperature,
		MaxTokens:   scoringMaxTokens,
	}

	for _, cred := range creds {
		scored, err := s.scoreWithCredential(ctx, cred, req)

		switch {
		case err == nil:
			return scored, nil
		case errors.Is(err, openrouter.ErrRateLimited):
			log.Warn().Str("credential", cred.Name).Msg("scoring credential rate limited, rotating")
			s.credentials.MarkRateLimited(cred.Name)
		default:
			return nil, err
		}
	}

	return nil, openrouter.ErrRateLimited
}

// scoreWithCredential performs one scoring attempt with a single credential,
// including the single parse-failure retry.
func (s *Scorer) scoreWithCredential(ctx context.Context, cred Credential, req openrouter.CompletionRequest) (*ScoredPolicy, error) {
	response, err := s.service.Complete(ctx, cred.Key, req)
	if err != nil {
		return nil, err
	}

	scored, parseErr := ParseScoredPolicy(response)
	if parseErr == nil {
		return scored, nil
	}

	log.Warn().Err(parseErr).Str("credential", cred.Name).Msg("scoring response failed validation, retrying once")

	response, err = s.service.Complete(ctx, cred.Key, req)
	if err != nil {
		return nil, err
	}

	scored, parseErr = ParseScoredPolicy(response)
	if parseErr != nil {
		return nil, fmt.Errorf("%w (after retry)", parseErr)
	}

	return scored, nil
}
