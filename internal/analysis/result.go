package analysis

import (
	"time"

	"github.com/alokemajumder/privacyhub-sub000/internal/fetch"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
)

// Scraper names reported to callers for each retrieval method
const (
	ScraperFirecrawl = "firecrawl"
	ScraperBrowser   = "browser"
	ScraperFetch     = "fetch"
)

// scraperNames maps internal retrieval method identifiers to the names the
// API reports.
var scraperNames = map[string]string{
	fetch.MethodStructuredScrape: ScraperFirecrawl,
	fetch.MethodHeadlessBrowser:  ScraperBrowser,
	fetch.MethodRawHTTP:          ScraperFetch,
}

// Result is the complete outcome of one policy analysis. It is immutable
// once returned; the caller owns it.
type Result struct {
	// URL is the policy URL that was actually analyzed
	URL string `json:"url"`
	// BrandName is a display name derived from the site's domain
	BrandName string `json:"brandName"`
	// Timestamp is when the analysis completed
	Timestamp time.Time `json:"timestamp"`
	// ScraperUsed names the retrieval strategy that produced the content
	ScraperUsed string `json:"scraperUsed"`
	// ContentLength is the length of the analyzed policy text
	ContentLength int `json:"contentLength"`
	// OverallScore is the weighted overall score on a 1-10 scale
	OverallScore float64 `json:"overallScore"`
	// Grade is the letter grade for the overall score
	Grade string `json:"grade"`
	// RiskLevel is the risk classification
	RiskLevel string `json:"riskLevel"`
	// RegulatoryCompliance holds per-framework assessments
	RegulatoryCompliance scoring.RegulatoryCompliance `json:"regulatoryCompliance"`
	// Categories holds the six rubric category scores
	Categories map[string]scoring.CategoryScore `json:"categories"`
	// CriticalFindings lists the most serious issues found
	CriticalFindings []string `json:"criticalFindings"`
	// PositivePractices lists commendable practices found
	PositivePractices []string `json:"positivePractices"`
	// Recommendations lists suggested improvements
	Recommendations []string `json:"recommendations"`
	// ExecutiveSummary is a short prose summary
	ExecutiveSummary string `json:"executiveSummary"`
}

// ScraperName translates a retrieval method identifier into the externally
// reported scraper name. Unknown methods are reported as-is.
func ScraperName(method string) string {
	if name, ok := scraperNames[method]; ok {
		return name
	}

	return method
}
