package scoring

import (
	"encoding/json"
	"fmt"
)

// CategoryScore is the scoring service's assessment of one rubric category
type CategoryScore struct {
	// Score is the service's own 1-10 value; the scorer does not recompute it
	Score float64 `json:"score"`
	// Reasoning is the service's justification for the score
	Reasoning string `json:"reasoning"`
}

// RegulatoryCompliance summarizes per-framework posture
type RegulatoryCompliance struct {
	GDPR string `json:"gdpr"`
	CCPA string `json:"ccpa"`
	DPDP string `json:"dpdp"`
}

// ScoredPolicy is the validated structured output of a scoring call
type ScoredPolicy struct {
	// OverallScore is the service's own headline number; the aggregator
	// recomputes the authoritative overall from category scores.
	OverallScore float64 `json:"overall_score"`
	// PrivacyGrade is the service-suggested letter grade
	PrivacyGrade string `json:"privacy_grade"`
	// RiskLevel is the service-declared risk classification
	RiskLevel string `json:"risk_level"`
	// RegulatoryCompliance holds per-framework assessments
	RegulatoryCompliance RegulatoryCompliance `json:"regulatory_compliance"`
	// Categories holds all six rubric category scores
	Categories map[string]CategoryScore `json:"categories"`
	// CriticalFindings lists the most serious issues found
	CriticalFindings []string `json:"critical_findings"`
	// PositivePractices lists commendable practices found
	PositivePractices []string `json:"positive_practices"`
	// Recommendations lists suggested improvements
	Recommendations []string `json:"recommendations"`
	// ExecutiveSummary is a short prose summary
	ExecutiveSummary string `json:"executive_summary"`
}

// requiredTopLevelKeys must all be present in a valid scoring response
var requiredTopLevelKeys = []string{
	"overall_score",
	"risk_level",
	"regulatory_compliance",
	"categories",
	"privacy_grade",
	"executive_summary",
}

// ParseScoredPolicy extracts, parses, and validates a scoring service
// response. The response may wrap its JSON in prose; only the first balanced
// JSON object is considered. All failures wrap ErrParse.
func ParseScoredPolicy(response string) (*ScoredPolicy, error) {
	raw, err := ExtractJSONObject(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// Key presence is checked on the raw object: a zero value in the typed
	// struct must mean "the service said zero", never "the key was absent".
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	for _, key := range requiredTopLevelKeys {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("%w: missing required key %q", ErrParse, key)
		}
	}

	var scored ScoredPolicy
	if err := json.Unmarshal([]byte(raw), &scored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := validateCategories(scored.Categories); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &scored, nil
}

// validateCategories checks that every rubric category is present with an
// in-range score and non-empty reasoning.
func validateCategories(categories map[string]CategoryScore) error {
	for _, name := range CategoryNames() {
		cat, ok := categories[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCategory, name)
		}

		if cat.Score < 1 || cat.Score > 10 {
			return fmt.Errorf("%w: %s scored %v", ErrInvalidScore, name, cat.Score)
		}

		if cat.Reasoning == "" {
			return fmt.Errorf("%s has no reasoning", name)
		}
	}

	return nil
}
