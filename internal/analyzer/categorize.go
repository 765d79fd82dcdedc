package analyzer

import (
	"telcheck/internal/domain"
	"telcheck/internal/rules"
	"telcheck/internal/textnorm"
)

// Categorizer classifies and labels line item descriptions. It only reads
// its rule set and is safe for concurrent use.
type Categorizer struct {
	rules *rules.Ruleset
}

// NewCategorizer creates a Categorizer over rs.
func NewCategorizer(rs *rules.Ruleset) *Categorizer {
	return &Categorizer{rules: rs}
}

// Categorize returns the first category whose keywords occur in description.
func (c *Categorizer) Categorize(description string) domain.ChargeCategory {
	return c.rules.CategoryOf(textnorm.Fold(description))
}

// Translate returns the glossary-based English label of description. This
// is a lookup, not a translation: unknown phrases pass through marked as
// unresolved.
func (c *Categorizer) Translate(description string) string {
	return c.rules.Translate(description)
}

// Explain returns the canned note for category.
func (c *Categorizer) Explain(category domain.ChargeCategory) string {
	return c.rules.Explain(category)
}
