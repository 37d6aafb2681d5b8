// Package scoring turns validated privacy policy text into a normalized,
// weighted privacy score by prompting a scoring service against a fixed
// rubric and deterministically aggregating its category scores.
package scoring

// Rubric category names. The set is fixed; every category must be present in
// a valid scored result — a missing category is a validation failure, not a
// default-zero.
const (
	CategoryDataCollection      = "data_collection"
	CategoryDataSharing         = "data_sharing"
	CategoryUserRights          = "user_rights"
	CategorySecurityMeasures    = "security_measures"
	CategoryComplianceFramework = "compliance_framework"
	CategoryTransparency        = "transparency"
)

// rubricCategory pairs a category with its immutable weight and the prompt
// description the scoring service is given for it.
type rubricCategory struct {
	name        string
	weight      int
	description string
}

// rubricCategories is the fixed, ordered rubric. Weights sum to 100.
var rubricCategories = []rubricCategory{
	{
		name:        CategoryDataCollection,
		weight:      30,
		description: "What personal data is collected, whether collection is minimized and purpose-bound (GDPR Art. 5, CCPA 1798.100, DPDP Act s.6). 1 = indiscriminate collection with no stated purpose, 10 = minimal, purpose-limited collection clearly enumerated.",
	},
	{
		name:        CategoryDataSharing,
		weight:      25,
		description: "Disclosure to third parties, data sales, cross-border transfers and safeguards (GDPR Ch. V, CCPA 1798.115). 1 = broad sharing or sale with no safeguards, 10 = no sharing or narrowly scoped sharing with named processors and safeguards.",
	},
	{
		name:        CategoryUserRights,
		weight:      20,
		description: "Access, deletion, correction, portability, opt-out mechanisms and how to exercise them (GDPR Arts. 15-22, CCPA 1798.105-125, DPDP Act ss.11-14). 1 = no rights mentioned, 10 = full rights with clear, free exercise paths.",
	},
	{
		name:        CategorySecurityMeasures,
		weight:      15,
		description: "Technical and organizational safeguards, encryption, breach notification commitments (GDPR Arts. 32-34). 1 = no security discussion, 10 = concrete measures and breach notification timelines.",
	},
	{
		name:        CategoryComplianceFramework,
		weight:      7,
		description: "Named legal bases, supervisory contacts, DPO, regulatory framework references. 1 = no framework acknowledged, 10 = explicit multi-framework compliance with accountable contacts.",
	},
	{
		name:        CategoryTransparency,
		weight:      3,
		description: "Readability, structure, effective date, change notification practice. 1 = opaque legalese with no dates, 10 = plainly written, dated, with change notification.",
	},
}

// CategoryNames returns the rubric category names in rubric order
func CategoryNames() []string {
	names := make([]string, 0, len(rubricCategories))
	for _, c := range rubricCategories {
		names = append(names, c.name)
	}

	return names
}

// CategoryWeight returns the immutable weight for a rubric category, or 0
// for an unknown name.
func CategoryWeight(name string) int {
	for _, c := range rubricCategories {
		if c.name == name {
			return c.weight
		}
	}

	return 0
}
