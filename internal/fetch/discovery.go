package fetch

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/projectdiscovery/httpx/common/httpx"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	// defaultHomepageTimeout bounds the homepage fetch during link discovery
	defaultHomepageTimeout = 15 * time.Second
	// defaultProbeTimeout bounds each common-path existence check
	defaultProbeTimeout = 8 * time.Second
	// defaultMaxRedirects is the maximum redirect hops during probing
	defaultMaxRedirects = 5
	// defaultMaxResponseBodySize caps the homepage body read (256KB)
	defaultMaxResponseBodySize = 256 * 1024
	// discoveryUserAgent identifies discovery traffic to target sites
	discoveryUserAgent = "Mozilla/5.0 (compatible; PrivacyHub/1.0; +https://privacyhub.dev)"
)

// Candidate URL provenance values
const (
	// SourceUserSupplied marks a policy URL provided directly by the user
	SourceUserSupplied = "user-supplied"
	// SourceHomepageLink marks a policy URL found in homepage anchors
	SourceHomepageLink = "homepage-link"
	// SourceCommonPath marks a policy URL found by probing well-known paths
	SourceCommonPath = "common-path"
	// SourceHomepageFallback marks the bare domain used when nothing else was found
	SourceHomepageFallback = "homepage-fallback"
)

// anchorPattern matches anchor tags, capturing the href and the anchor text
var anchorPattern = regexp.MustCompile(`(?i)<a\s[^>]*href=["']([^"'#][^"']*)["'][^>]*>(.*?)</a>`)

// privacyLinkFilter matches hrefs or anchor text likely to point at a privacy policy
var privacyLinkFilter = regexp.MustCompile(`(?i)(privac|data.?protection|gdpr|ccpa|dpdp|personal.?data|privacy.?policy|policy)`)

// commonPolicyPaths are well-known privacy policy locations, probed in order
// when the homepage yields no matching link.
var commonPolicyPaths = []string{
	"/privacy",
	"/privacy-policy",
	"/privacy_policy",
	"/privacypolicy",
	"/privacy-notice",
	"/privacy-statement",
	"/legal/privacy",
	"/legal/privacy-policy",
	"/legal/privacy-notice",
	"/policies/privacy",
	"/policy/privacy",
	"/about/privacy",
	"/help/privacy",
	"/support/privacy",
	"/data-protection",
	"/legal/data-protection",
	"/privacy.html",
	"/privacy-policy.html",
	"/en/privacy",
	"/en/privacy-policy",
}

// Candidate is a discovered policy URL plus where it came from
type Candidate struct {
	// URL is the absolute policy URL to fetch
	URL string
	// Source records how the URL was discovered
	Source string
}

// Discoverer locates the privacy policy URL for a bare domain
type Discoverer struct {
	homepageTimeout time.Duration
	probeTimeout    time.Duration
}

// DiscoverOption configures the Discoverer
type DiscoverOption func(*Discoverer)

// WithHomepageTimeout sets the homepage fetch timeout
func WithHomepageTimeout(d time.Duration) DiscoverOption {
	return func(o *Discoverer) {
		if d > 0 {
			o.homepageTimeout = d
		}
	}
}

// WithProbeTimeout sets the per-path probe timeout
func WithProbeTimeout(d time.Duration) DiscoverOption {
	return func(o *Discoverer) {
		if d > 0 {
			o.probeTimeout = d
		}
	}
}

// NewDiscoverer creates a policy URL discoverer
func NewDiscoverer(opts ...DiscoverOption) *Discoverer {
	d := &Discoverer{
		homepageTimeout: defaultHomepageTimeout,
		probeTimeout:    defaultProbeTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover resolves the privacy policy URL for a domain. The homepage anchor
// scan runs first, then the common-path probe; both failing falls back to the
// bare domain itself so the content stage can attempt homepage extraction.
// The sub-steps are strictly ordered, never concurrent.
func (d *Discoverer) Discover(ctx context.Context, domain string) (Candidate, error) {
	if domain == "" {
		return Candidate{}, ErrInvalidURL
	}

	if link, ok := d.scanHomepage(ctx, domain); ok {
		log.Info().Str("domain", domain).Str("policy_url", link).Msg("policy link found on homepage")
		return Candidate{URL: link, Source: SourceHomepageLink}, nil
	}

	if ctx.Err() != nil {
		return Candidate{}, ctx.Err()
	}

	if link, ok := d.probeCommonPaths(ctx, domain); ok {
		log.Info().Str("domain", domain).Str("policy_url", link).Msg("policy found at common path")
		return Candidate{URL: link, Source: SourceCommonPath}, nil
	}

	if ctx.Err() != nil {
		return Candidate{}, ctx.Err()
	}

	log.Warn().Str("domain", domain).Msg("no policy URL discovered, falling back to homepage")

	return Candidate{URL: fmt.Sprintf("https://%s", domain), Source: SourceHomepageFallback}, nil
}

// newHTTPXClient creates a configured httpx client with the given timeout
func (d *Discoverer) newHTTPXClient(timeout time.Duration) (*httpx.HTTPX, error) {
	return httpx.New(&httpx.Options{
		Timeout:                   timeout,
		FollowRedirects:           true,
		MaxRedirects:              defaultMaxRedirects,
		MaxResponseBodySizeToRead: defaultMaxResponseBodySize,
		DefaultUserAgent:          discoveryUserAgent,
	})
}

// scanHomepage fetches the domain's homepage and returns the first anchor
// whose href or text matches the privacy keyword set, resolved to an
// absolute same-domain URL.
func (d *Discoverer) scanHomepage(ctx context.Context, domain string) (string, bool) {
	client, err := d.newHTTPXClient(d.homepageTimeout)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize httpx client for homepage scan")
		return "", false
	}

	homepageURL := fmt.Sprintf("https://%s", domain)

	req, err := client.NewRequestWithContext(ctx, http.MethodGet, homepageURL)
	if err != nil {
		return "", false
	}

	resp, err := client.Do(req, httpx.UnsafeOptions{})
	if err != nil {
		log.Warn().Err(err).Str("domain", domain).Msg("homepage fetch failed")
		return "", false
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("domain", domain).Int("status", resp.StatusCode).Msg("homepage returned non-200 status")
		return "", false
	}

	return findPolicyLink(string(resp.Data), domain)
}

// findPolicyLink returns the first anchor in the HTML body matching the
// privacy keyword set by href or anchor text.
func findPolicyLink(body, domain string) (string, bool) {
	for _, match := range anchorPattern.FindAllStringSubmatch(body, -1) {
		if len(match) < 3 {
			continue
		}

		href := strings.TrimSpace(match[1])
		text := strings.TrimSpace(match[2])

		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			continue
		}

		if !privacyLinkFilter.MatchString(href) && !privacyLinkFilter.MatchString(text) {
			continue
		}

		resolved := resolveAgainstDomain(href, domain)
		if !isSameDomain(resolved, domain) {
			continue
		}

		return resolved, true
	}

	return "", false
}

// probeCommonPaths checks the well-known policy paths in order with
// lightweight HEAD requests, returning the first that responds successfully.
func (d *Discoverer) probeCommonPaths(ctx context.Context, domain string) (string, bool) {
	client, err := d.newHTTPXClient(d.probeTimeout)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize httpx client for path probing")
		return "", false
	}

	targets := lo.Map(commonPolicyPaths, func(path string, _ int) string {
		return fmt.Sprintf("https://%s%s", domain, path)
	})

	for _, target := range targets {
		if ctx.Err() != nil {
			return "", false
		}

		req, err := client.NewRequestWithContext(ctx, http.MethodHead, target)
		if err != nil {
			continue
		}

		resp, err := client.Do(req, httpx.UnsafeOptions{})
		if err != nil {
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return target, true
		}
	}

	return "", false
}

// resolveAgainstDomain resolves a potentially relative href against the domain
func resolveAgainstDomain(href, domain string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	if strings.HasPrefix(href, "/") {
		return fmt.Sprintf("https://%s%s", domain, href)
	}

	return fmt.Sprintf("https://%s/%s", domain, href)
}

// isSameDomain checks whether a URL belongs to the given domain or a subdomain of it
func isSameDomain(rawURL, domain string) bool {
	stripped := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")

	host := stripped
	if idx := strings.IndexAny(stripped, "/?"); idx != -1 {
		host = stripped[:idx]
	}

	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	return host == domain || strings.HasSuffix(host, "."+domain)
}
