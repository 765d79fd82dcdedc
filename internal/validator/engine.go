package validator

import (
	"context"

	"telcheck/internal/domain"
	"telcheck/internal/validator/invoice"
)

// Outcome is a validation result together with the rule that produced it.
type Outcome struct {
	invoice.ValidationResult
	RuleKey  string
	RuleName string
	RuleType domain.ValidationRuleType
	Severity domain.ValidationSeverity
}

// Engine runs every registered rule against an analysis result.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate runs all rules in registration order.
func (e *Engine) Validate(ctx context.Context, data *domain.AnalysisResult) []Outcome {
	var out []Outcome
	for _, v := range e.registry.All() {
		for _, vr := range v.Validate(ctx, data) {
			out = append(out, Outcome{
				ValidationResult: vr,
				RuleKey:          v.RuleKey(),
				RuleName:         v.RuleName(),
				RuleType:         v.RuleType(),
				Severity:         v.Severity(),
			})
		}
	}
	return out
}

// Failures returns the outcomes that did not pass.
func Failures(outcomes []Outcome) []Outcome {
	var out []Outcome
	for i := range outcomes {
		if !outcomes[i].Passed {
			out = append(out, outcomes[i])
		}
	}
	return out
}
