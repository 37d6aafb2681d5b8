package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
)

// stubCompletionService replays canned responses (or errors) in sequence,
// recording which credential issued each call.
type stubCompletionService struct {
	responses []string
	errs      []error
	calls     int
	keysUsed  []string
}

func (s *stubCompletionService) Complete(_ context.Context, apiKey string, _ openrouter.CompletionRequest) (string, error) {
	idx := s.calls
	s.calls++
	s.keysUsed = append(s.keysUsed, apiKey)

	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}

	if idx < len(s.responses) {
		return s.responses[idx], nil
	}

	return "", errors.New("no scripted response")
}

type stubCredentialProvider struct {
	creds       []Credential
	err         error
	rateLimited []string
}

func (p *stubCredentialProvider) Credentials(context.Context) ([]Credential, error) {
	return p.creds, p.err
}

func (p *stubCredentialProvider) MarkRateLimited(name string) {
	p.rateLimited = append(p.rateLimited, name)
}

func twoCredentials() *stubCredentialProvider {
	return &stubCredentialProvider{creds: []Credential{
		{Name: "key-1", Key: "sk-first"},
		{Name: "key-2", Key: "sk-second"},
	}}
}

func TestScorerScore(t *testing.T) {
	policy := "We collect your email address to provide the service."

	t.Run("first credential succeeds", func(t *testing.T) {
		service := &stubCompletionService{responses: []string{validResponse(t, nil, RiskLow)}}

		scorer, err := NewScorer(service, twoCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		scored, err := scorer.Score(context.Background(), policy)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if scored.RiskLevel != RiskLow {
			t.Errorf("risk = %q, want %q", scored.RiskLevel, RiskLow)
		}

		if service.calls != 1 {
			t.Errorf("service calls = %d, want 1", service.calls)
		}
	})

	t.Run("rate limited credential rotated", func(t *testing.T) {
		service := &stubCompletionService{
			errs:      []error{openrouter.ErrRateLimited, nil},
			responses: []string{"", validResponse(t, nil, RiskModerate)},
		}
		provider := twoCredentials()

		scorer, err := NewScorer(service, provider)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		scored, err := scorer.Score(context.Background(), policy)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if scored.RiskLevel != RiskModerate {
			t.Errorf("risk = %q, want %q", scored.RiskLevel, RiskModerate)
		}

		if len(provider.rateLimited) != 1 || provider.rateLimited[0] != "key-1" {
			t.Errorf("rate limited = %v, want [key-1]", provider.rateLimited)
		}

		if len(service.keysUsed) != 2 || service.keysUsed[1] != "sk-second" {
			t.Errorf("keys used = %v, want second call on sk-second", service.keysUsed)
		}
	})

	t.Run("all credentials rate limited", func(t *testing.T) {
		service := &stubCompletionService{errs: []error{openrouter.ErrRateLimited, openrouter.ErrRateLimited}}
		provider := twoCredentials()

		scorer, err := NewScorer(service, provider)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := scorer.Score(context.Background(), policy); !errors.Is(err, openrouter.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}

		if len(provider.rateLimited) != 2 {
			t.Errorf("rate limited = %v, want both marked", provider.rateLimited)
		}
	})

	t.Run("malformed response retried once then succeeds", func(t *testing.T) {
		service := &stubCompletionService{responses: []string{
			"I could not produce JSON this time, sorry.",
			validResponse(t, nil, RiskLow),
		}}

		scorer, err := NewScorer(service, twoCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		scored, err := scorer.Score(context.Background(), policy)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if scored == nil {
			t.Fatal("expected scored policy")
		}

		if service.calls != 2 {
			t.Errorf("service calls = %d, want 2", service.calls)
		}

		// Retry stays on the same credential
		if service.keysUsed[0] != service.keysUsed[1] {
			t.Errorf("retry switched credentials: %v", service.keysUsed)
		}
	})

	t.Run("two malformed responses are terminal", func(t *testing.T) {
		service := &stubCompletionService{responses: []string{
			"still no JSON",
			"and none on retry either",
		}}

		scorer, err := NewScorer(service, twoCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := scorer.Score(context.Background(), policy); !errors.Is(err, ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}

		// Parse failure is terminal: the second credential is never tried
		if service.calls != 2 {
			t.Errorf("service calls = %d, want 2", service.calls)
		}
	})

	t.Run("transport error is terminal", func(t *testing.T) {
		transportErr := errors.New("connection reset")
		service := &stubCompletionService{errs: []error{transportErr}}

		scorer, err := NewScorer(service, twoCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := scorer.Score(context.Background(), policy); !errors.Is(err, transportErr) {
			t.Fatalf("expected transport error, got %v", err)
		}
	})

	t.Run("empty policy", func(t *testing.T) {
		scorer, err := NewScorer(&stubCompletionService{}, twoCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := scorer.Score(context.Background(), ""); !errors.Is(err, ErrEmptyPolicy) {
			t.Fatalf("expected ErrEmptyPolicy, got %v", err)
		}
	})

	t.Run("no credentials available", func(t *testing.T) {
		scorer, err := NewScorer(&stubCompletionService{}, &stubCredentialProvider{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := scorer.Score(context.Background(), policy); !errors.Is(err, ErrNoCredentials) {
			t.Fatalf("expected ErrNoCredentials, got %v", err)
		}
	})
}
