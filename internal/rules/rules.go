// Package rules loads the keyword and glossary tables that drive the
// analyzer. A Ruleset is immutable after loading and safe to share.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"telcheck/internal/domain"
	"telcheck/internal/textnorm"
)

//go:embed rules.yaml
var defaultRules []byte

// KeywordSet matches folded text by substring ("contains") or by whole word.
type KeywordSet struct {
	Contains []string `yaml:"contains"`
	Words    []string `yaml:"words"`
}

// Match reports whether any keyword of the set occurs in f.
func (k KeywordSet) Match(f textnorm.Folded) bool {
	for _, kw := range k.Contains {
		if strings.Contains(f.Joined, kw) {
			return true
		}
	}
	for _, w := range k.Words {
		if f.HasWord(w) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no keywords at all.
func (k KeywordSet) Empty() bool {
	return len(k.Contains) == 0 && len(k.Words) == 0
}

func (k KeywordSet) simplified() KeywordSet {
	out := KeywordSet{}
	for _, kw := range k.Contains {
		if s := textnorm.Simplify(kw); s != "" {
			out.Contains = append(out.Contains, s)
		}
	}
	for _, w := range k.Words {
		if s := textnorm.Simplify(w); s != "" {
			out.Words = append(out.Words, s)
		}
	}
	return out
}

// ProviderRule maps a keyword set to a provider.
type ProviderRule struct {
	Provider   domain.Provider `yaml:"provider"`
	KeywordSet `yaml:",inline"`
}

// DocumentTypeRule maps a keyword set to a document type.
type DocumentTypeRule struct {
	DocumentType domain.DocumentType `yaml:"document_type"`
	KeywordSet   `yaml:",inline"`
}

// CategoryRule maps a keyword set to a charge category.
type CategoryRule struct {
	Category   domain.ChargeCategory `yaml:"category"`
	KeywordSet `yaml:",inline"`
}

// GlossaryEntry is one German to English replacement.
type GlossaryEntry struct {
	DE string `yaml:"de"`
	EN string `yaml:"en"`
}

// LineItemRules configures line-item filtering.
type LineItemRules struct {
	MinDescriptionLength int        `yaml:"min_description_length"`
	Summary              KeywordSet `yaml:"summary"`
	Metadata             KeywordSet `yaml:"metadata"`
	SingletonSummary     KeywordSet `yaml:"singleton_summary"`
}

// Ruleset is the complete, validated rule configuration.
type Ruleset struct {
	Providers        []ProviderRule                   `yaml:"providers"`
	DocumentTypes    []DocumentTypeRule               `yaml:"document_types"`
	LineItems        LineItemRules                    `yaml:"line_items"`
	Categories       []CategoryRule                   `yaml:"categories"`
	Glossary         []GlossaryEntry                  `yaml:"glossary"`
	UnresolvedMarker string                           `yaml:"unresolved_marker"`
	Explanations     map[domain.ChargeCategory]string `yaml:"explanations"`

	replacer *strings.Replacer
}

// Default returns the embedded rule set.
func Default() (*Ruleset, error) {
	return Parse(defaultRules)
}

// Load returns the rule set stored at path, or the embedded one when path is empty.
func Load(path string) (*Ruleset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML rule set.
func Parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRuleset, err)
	}
	if err := rs.prepare(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func (rs *Ruleset) prepare() error {
	if len(rs.Providers) == 0 {
		return fmt.Errorf("%w: no provider rules", domain.ErrInvalidRuleset)
	}
	for i := range rs.Providers {
		p := &rs.Providers[i]
		if !p.Provider.Valid() || p.Provider == domain.ProviderUnknown {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidRuleset, p.Provider)
		}
		p.KeywordSet = p.simplified()
	}

	for i := range rs.DocumentTypes {
		d := &rs.DocumentTypes[i]
		if !d.DocumentType.Valid() || d.DocumentType == domain.DocumentTypeUnknown {
			return fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidRuleset, d.DocumentType)
		}
		d.KeywordSet = d.simplified()
	}

	for i := range rs.Categories {
		c := &rs.Categories[i]
		if !c.Category.Valid() || c.Category == domain.CategoryOther {
			return fmt.Errorf("%w: category %q cannot have keywords", domain.ErrInvalidRuleset, c.Category)
		}
		c.KeywordSet = c.simplified()
	}

	if rs.LineItems.MinDescriptionLength <= 0 {
		return fmt.Errorf("%w: min_description_length must be positive", domain.ErrInvalidRuleset)
	}
	rs.LineItems.Summary = rs.LineItems.Summary.simplified()
	rs.LineItems.Metadata = rs.LineItems.Metadata.simplified()
	rs.LineItems.SingletonSummary = rs.LineItems.SingletonSummary.simplified()

	if strings.TrimSpace(rs.UnresolvedMarker) == "" {
		return fmt.Errorf("%w: unresolved_marker is required", domain.ErrInvalidRuleset)
	}
	for _, c := range domain.AllCategories {
		if rs.Explanations[c] == "" {
			return fmt.Errorf("%w: missing explanation for %s", domain.ErrInvalidRuleset, c)
		}
	}

	pairs := make([]string, 0, 2*len(rs.Glossary))
	for _, g := range rs.Glossary {
		if g.DE == "" || g.DE == g.EN {
			return fmt.Errorf("%w: glossary entry %q must change the text", domain.ErrInvalidRuleset, g.DE)
		}
		pairs = append(pairs, g.DE, g.EN)
	}
	rs.replacer = strings.NewReplacer(pairs...)
	return nil
}

// ProviderOf returns the first provider whose keywords occur in any of the
// folded inputs, or ProviderUnknown.
func (rs *Ruleset) ProviderOf(inputs ...textnorm.Folded) domain.Provider {
	for _, rule := range rs.Providers {
		for _, in := range inputs {
			if rule.Match(in) {
				return rule.Provider
			}
		}
	}
	return domain.ProviderUnknown
}

// DocumentTypeOf returns the first matching document type, or DocumentTypeUnknown.
func (rs *Ruleset) DocumentTypeOf(f textnorm.Folded) domain.DocumentType {
	for _, rule := range rs.DocumentTypes {
		if rule.Match(f) {
			return rule.DocumentType
		}
	}
	return domain.DocumentTypeUnknown
}

// CategoryOf returns the first matching category, or CategoryOther.
func (rs *Ruleset) CategoryOf(f textnorm.Folded) domain.ChargeCategory {
	for _, rule := range rs.Categories {
		if rule.Match(f) {
			return rule.Category
		}
	}
	return domain.CategoryOther
}

// Translate applies the glossary to s. When nothing was replaced the
// unresolved marker is appended instead.
func (rs *Ruleset) Translate(s string) string {
	out := rs.replacer.Replace(s)
	if out == s {
		return s + rs.UnresolvedMarker
	}
	return out
}

// Explain returns the canned explanation for c.
func (rs *Ruleset) Explain(c domain.ChargeCategory) string {
	if e, ok := rs.Explanations[c]; ok {
		return e
	}
	return rs.Explanations[domain.CategoryOther]
}
