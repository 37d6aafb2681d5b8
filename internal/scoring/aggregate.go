package scoring

import (
	"fmt"
	"math"
)

// Risk level classifications, from best to worst
const (
	RiskExemplary    = "EXEMPLARY"
	RiskLow          = "LOW"
	RiskModerate     = "MODERATE"
	RiskModerateHigh = "MODERATE-HIGH"
	RiskHigh         = "HIGH"
)

// Assessment is the deterministic aggregation of category scores
type Assessment struct {
	// OverallScore is the weighted mean of category scores on a 1-10 scale
	OverallScore float64 `json:"overall_score"`
	// Grade is the letter grade for the overall score
	Grade string `json:"grade"`
	// RiskLevel is the risk classification
	RiskLevel string `json:"risk_level"`
}

// gradeTable maps overall-score floors to letter grades. Entries are in
// strictly descending order of floor; the first floor the score reaches
// wins, so the table is monotonic, exhaustive and non-overlapping.
var gradeTable = []struct {
	floor float64
	grade string
}{
	{9.5, "A+"},
	{9.0, "A"},
	{8.5, "A-"},
	{8.0, "B+"},
	{7.5, "B"},
	{7.0, "B-"},
	{6.5, "C+"},
	{6.0, "C"},
	{5.5, "C-"},
	{5.0, "D+"},
	{4.5, "D"},
	{4.0, "D-"},
}

// riskTable maps overall-score floors to risk levels, in descending order
var riskTable = []struct {
	floor float64
	level string
}{
	{9.0, RiskExemplary},
	{7.5, RiskLow},
	{6.0, RiskModerate},
	{4.5, RiskModerateHigh},
}

// validRiskLevels is the closed set a service-declared risk level must belong to
var validRiskLevels = map[string]struct{}{
	RiskExemplary:    {},
	RiskLow:          {},
	RiskModerate:     {},
	RiskModerateHigh: {},
	RiskHigh:         {},
}

// Aggregate computes the weighted overall score, letter grade, and risk
// level from the six category scores. When the service declared a risk level
// from the known set it is honored; otherwise the risk level is derived from
// the computed overall. Pure and deterministic: identical inputs always
// produce identical output.
func Aggregate(categories map[string]CategoryScore, declaredRisk string) (Assessment, error) {
	if err := validateCategories(categories); err != nil {
		return Assessment{}, err
	}

	weighted := 0.0
	for _, c := range rubricCategories {
		weighted += categories[c.name].Score * float64(c.weight)
	}

	// Weights sum to 100, so this is the weighted mean on the 1-10 scale
	overall := math.Round(weighted) / 100

	risk := declaredRisk
	if _, ok := validRiskLevels[risk]; !ok {
		risk = RiskLevelFor(overall)
	}

	return Assessment{
		OverallScore: overall,
		Grade:        GradeFor(overall),
		RiskLevel:    risk,
	}, nil
}

// GradeFor maps an overall score to its letter grade
func GradeFor(overall float64) string {
	for _, entry := range gradeTable {
		if overall >= entry.floor {
			return entry.grade
		}
	}

	return "F"
}

// RiskLevelFor maps an overall score to a risk classification
func RiskLevelFor(overall float64) string {
	for _, entry := range riskTable {
		if overall >= entry.floor {
			return entry.level
		}
	}

	return RiskHigh
}

// FormatScore renders an overall score with two decimal places for display
func FormatScore(overall float64) string {
	return fmt.Sprintf("%.2f", overall)
}
