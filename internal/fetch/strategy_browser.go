package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelector matches elements stripped before text extraction:
// scripts, styles, chrome (nav/header/footer/aside) and ARIA landmarks.
const nonContentSelector = "script, style, noscript, nav, header, footer, aside, " +
	"[role=navigation], [role=banner], [role=contentinfo], [role=complementary]"

// contentSelectors is the priority list of containers searched for policy
// text; the first whose text exceeds minContainerTextLength wins. The body
// fallback is last so something is always returned for sparse markup.
var contentSelectors = []string{
	"main",
	"[role=main]",
	".content",
	".main-content",
	"article",
	".policy-content",
	".privacy-policy",
	".legal-content",
	"#content",
	"body",
}

// minContainerTextLength is the minimum text length for a container to be
// considered the policy body rather than an empty layout shell.
const minContainerTextLength = 500

// RenderClient is the subset of the browser rendering client the strategy needs
type RenderClient interface {
	RenderContent(ctx context.Context, pageURL string) (string, error)
}

// BrowserStrategy retrieves content by rendering the page in a remote
// headless browser, then extracting readable text from the rendered DOM.
type BrowserStrategy struct {
	client RenderClient
}

// NewBrowserStrategy creates the headless-browser retrieval strategy
func NewBrowserStrategy(client RenderClient) *BrowserStrategy {
	if client == nil {
		return nil
	}

	return &BrowserStrategy{client: client}
}

// Name implements Strategy
func (s *BrowserStrategy) Name() string {
	return MethodHeadlessBrowser
}

// Fetch implements Strategy
func (s *BrowserStrategy) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	html, err := s.client.RenderContent(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	title, text, err := extractReadableText(html)
	if err != nil {
		return nil, err
	}

	if len(text) < minStrategyContentLength {
		return nil, fmt.Errorf("%w: got %d chars", ErrContentTooShort, len(text))
	}

	return &Content{
		Title:   title,
		RawText: text,
		Method:  MethodHeadlessBrowser,
	}, nil
}

// extractReadableText strips non-content elements from the rendered HTML and
// returns the page title plus the text of the first content container in the
// priority list holding a substantial amount of text.
func extractReadableText(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parsing rendered HTML: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(nonContentSelector).Remove()

	for _, selector := range contentSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}

		candidate := collapseWhitespace(selection.Text())
		if len(candidate) > minContainerTextLength {
			return title, candidate, nil
		}
	}

	// No container passed the threshold; fall back to whatever the body holds
	return title, collapseWhitespace(doc.Find("body").Text()), nil
}
