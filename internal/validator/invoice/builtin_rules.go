package invoice

import (
	"context"

	"telcheck/internal/domain"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(context.Context, *domain.AnalysisResult) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, data *domain.AnalysisResult) []ValidationResult {
	return b.fn(ctx, data)
}
func (b *BuiltinValidator) RuleKey() string                     { return b.key }
func (b *BuiltinValidator) RuleName() string                    { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity { return b.sev }

type rule interface {
	Validate(context.Context, *domain.AnalysisResult) []ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

func wrap(v rule) *BuiltinValidator {
	return &BuiltinValidator{
		key: v.RuleKey(), name: v.RuleName(),
		ruleType: v.RuleType(), sev: v.Severity(),
		fn: v.Validate,
	}
}

// AllBuiltinValidators returns every built-in validator in evaluation order:
// required, format, then logical checks.
func AllBuiltinValidators() []*BuiltinValidator {
	reqVals := RequiredFieldValidators()
	fmtVals := FormatValidators()
	logVals := LogicalValidators()
	all := make([]*BuiltinValidator, 0, len(reqVals)+len(fmtVals)+len(logVals))

	for _, v := range reqVals {
		all = append(all, wrap(v))
	}
	for _, v := range fmtVals {
		all = append(all, wrap(v))
	}
	for _, v := range logVals {
		all = append(all, wrap(v))
	}
	return all
}
