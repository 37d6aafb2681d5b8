package scoring

import (
	"fmt"
	"strings"
)

// maxPolicyPromptLength caps how much policy text is embedded in the prompt
const maxPolicyPromptLength = 16000

// systemPrompt is the fixed rubric instruction given to the scoring service
const systemPrompt = `You are a privacy policy analyst. Score the privacy policy you are given against a fixed rubric of six weighted categories derived from GDPR, CCPA, and India's DPDP Act. Score each category from 1 (worst) to 10 (best). Be strict and evidence-based: only credit practices the policy explicitly states. Respond with JSON only, matching the requested shape exactly, with no surrounding commentary.`

// responseShape documents the JSON structure the service must reply with
const responseShape = `{
  "overall_score": <number 1-10>,
  "privacy_grade": "<letter grade>",
  "risk_level": "<EXEMPLARY|LOW|MODERATE|MODERATE-HIGH|HIGH>",
  "regulatory_compliance": {"gdpr": "<assessment>", "ccpa": "<assessment>", "dpdp": "<assessment>"},
  "categories": {
    "data_collection": {"score": <number>, "reasoning": "<string>"},
    "data_sharing": {"score": <number>, "reasoning": "<string>"},
    "user_rights": {"score": <number>, "reasoning": "<string>"},
    "security_measures": {"score": <number>, "reasoning": "<string>"},
    "compliance_framework": {"score": <number>, "reasoning": "<string>"},
    "transparency": {"score": <number>, "reasoning": "<string>"}
  },
  "critical_findings": ["<string>"],
  "positive_practices": ["<string>"],
  "recommendations": ["<string>"],
  "executive_summary": "<string>"
}`

// buildUserPrompt assembles the scoring request: the rubric with weights and
// descriptions, the policy text truncated to a bounded length, and the
// explicit response shape.
func buildUserPrompt(policyText string) string {
	var b strings.Builder

	b.WriteString("Score this privacy policy against the following rubric.\n\nRubric categories and weights:\n")

	for _, c := range rubricCategories {
		fmt.Fprintf(&b, "- %s (weight %d): %s\n", c.name, c.weight, c.description)
	}

	b.WriteString("\nPrivacy policy text:\n---\n")
	b.WriteString(truncate(policyText, maxPolicyPromptLength))
	b.WriteString("\n---\n\nReply with exactly this JSON shape:\n")
	b.WriteString(responseShape)

	return b.String()
}

// truncate bounds s to at most limit characters
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit]
}
