// Package analysis runs the full privacy policy analysis pipeline: URL
// validation, policy discovery, content retrieval, content validation,
// scoring, and deterministic aggregation into a single result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alokemajumder/privacyhub-sub000/internal/domain"
	"github.com/alokemajumder/privacyhub-sub000/internal/fetch"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
	"github.com/alokemajumder/privacyhub-sub000/internal/slack"
	"github.com/alokemajumder/privacyhub-sub000/internal/urlcheck"
)

// Discoverer locates the policy URL for a bare domain
type Discoverer interface {
	Discover(ctx context.Context, domain string) (fetch.Candidate, error)
}

// Fetcher retrieves policy content for a URL
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*fetch.Content, error)
}

// Scorer turns policy text into a structured scored result
type Scorer interface {
	Score(ctx context.Context, policyText string) (*scoring.ScoredPolicy, error)
}

// Notifier announces completed analyses out of band
type Notifier interface {
	NotifyAnalysis(ctx context.Context, n slack.AnalysisNotification) error
}

// Analyzer orchestrates one analysis per invocation. Each run owns its own
// fetched content and scoring attempt; no state is shared between runs.
type Analyzer struct {
	discoverer Discoverer
	fetcher    Fetcher
	scorer     Scorer
	notifier   Notifier
	now        func() time.Time
}

// AnalyzerOption configures the Analyzer
type AnalyzerOption func(*Analyzer)

// WithNotifier announces completed analyses through the given notifier
func WithNotifier(n Notifier) AnalyzerOption {
	return func(a *Analyzer) {
		a.notifier = n
	}
}

// WithAnalyzerClock substitutes the time source, for tests
func WithAnalyzerClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAnalyzer creates the analysis pipeline from its stages
func NewAnalyzer(discoverer Discoverer, fetcher Fetcher, scorer Scorer, opts ...AnalyzerOption) (*Analyzer, error) {
	if discoverer == nil || fetcher == nil || scorer == nil {
		return nil, errors.New("discoverer, fetcher, and scorer are all required")
	}

	analyzer := &Analyzer{
		discoverer: discoverer,
		fetcher:    fetcher,
		scorer:     scorer,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(analyzer)
	}

	return analyzer, nil
}

// Analyze validates the input, locates and retrieves the policy, scores it,
// and assembles the final result. The stages run strictly in sequence and the
// first failure is terminal for the run.
func (a *Analyzer) Analyze(ctx context.Context, input string) (*Result, error) {
	validated := urlcheck.Validate(input)
	if !validated.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, validated.Error)
	}

	policyURL, err := a.resolvePolicyURL(ctx, validated.URL)
	if err != nil {
		return nil, err
	}

	content, err := a.fetcher.Fetch(ctx, policyURL)
	if err != nil {
		return nil, err
	}

	if err := fetch.ValidatePolicyText(content); err != nil {
		return nil, err
	}

	scored, err := a.scorer.Score(ctx, content.RawText)
	if err != nil {
		return nil, err
	}

	assessment, err := scoring.Aggregate(scored.Categories, scored.RiskLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scoring.ErrParse, err)
	}

	result := &Result{
		URL:                  content.URL,
		BrandName:            domain.BrandName(content.Hostname),
		Timestamp:            a.now(),
		ScraperUsed:          ScraperName(content.Method),
		ContentLength:        len(content.RawText),
		OverallScore:         assessment.OverallScore,
		Grade:                assessment.Grade,
		RiskLevel:            assessment.RiskLevel,
		RegulatoryCompliance: scored.RegulatoryCompliance,
		Categories:           scored.Categories,
		CriticalFindings:     scored.CriticalFindings,
		PositivePractices:    scored.PositivePractices,
		Recommendations:      scored.Recommendations,
		ExecutiveSummary:     scored.ExecutiveSummary,
	}

	log.Info().
		Str("url", result.URL).
		Str("scraper", result.ScraperUsed).
		Float64("overall", result.OverallScore).
		Str("grade", result.Grade).
		Str("risk", result.RiskLevel).
		Msg("analysis complete")

	a.notify(ctx, result)

	return result, nil
}

// resolvePolicyURL runs discovery when the input is a bare domain; a URL
// that already carries a path is treated as a direct policy link.
func (a *Analyzer) resolvePolicyURL(ctx context.Context, validatedURL string) (string, error) {
	parsed, err := url.Parse(validatedURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if parsed.Path != "" && parsed.Path != "/" {
		log.Debug().Str("url", validatedURL).Msg("using user-supplied policy URL")
		return validatedURL, nil
	}

	candidate, err := a.discoverer.Discover(ctx, parsed.Hostname())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %v", fetch.ErrDiscoveryFailed, err)
	}

	log.Debug().Str("domain", parsed.Hostname()).Str("policy_url", candidate.URL).Str("source", candidate.Source).Msg("policy URL resolved")

	return candidate.URL, nil
}

// notify is best effort: a notification failure never fails the analysis
func (a *Analyzer) notify(ctx context.Context, result *Result) {
	if a.notifier == nil {
		return
	}

	notification := slack.AnalysisNotification{
		URL:          result.URL,
		BrandName:    result.BrandName,
		OverallScore: result.OverallScore,
		Grade:        result.Grade,
		RiskLevel:    result.RiskLevel,
		ScraperUsed:  result.ScraperUsed,
	}

	if err := a.notifier.NotifyAnalysis(ctx, notification); err != nil {
		log.Warn().Err(err).Str("url", result.URL).Msg("analysis notification failed")
	}
}
