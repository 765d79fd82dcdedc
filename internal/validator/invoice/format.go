package invoice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jacoelho/banking/iban"

	"telcheck/internal/domain"
)

// DateLayout is the only date form extracted from documents.
const DateLayout = "02.01.2006"

var (
	bicPattern  = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// formatValidator checks a field against a format or checksum rule.
type formatValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	ruleType  domain.ValidationRuleType
	severity  domain.ValidationSeverity
	validate  func(*domain.AnalysisResult) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return v.ruleType }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, data *domain.AnalysisResult) []ValidationResult {
	return v.validate(data)
}

func regexCheck(fieldPath, value, expected, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return skipped(fieldPath, expected, ruleName)
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value, Message: msg,
	}
}

func dateCheck(fieldPath, value, ruleName string) ValidationResult {
	const expected = "calendar date DD.MM.YYYY"
	if value == "" {
		return skipped(fieldPath, expected, ruleName)
	}
	_, err := ParseDate(value)
	passed := err == nil
	msg := fmt.Sprintf("%s: %s is a valid date", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a valid calendar date", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value, Message: msg,
	}
}

func ibanCheck(fieldPath, value, ruleName string) ValidationResult {
	const expected = "ISO 13616 IBAN with valid check digits"
	if value == "" {
		return skipped(fieldPath, expected, ruleName)
	}
	passed := ValidIBAN(value)
	msg := fmt.Sprintf("%s: %s has valid check digits", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s fails the IBAN checksum", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value, Message: msg,
	}
}

// ParseDate parses a DD.MM.YYYY date and rejects impossible days.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("unparseable date: %s", s)
	}
	return time.Parse(DateLayout, s)
}

// ValidIBAN reports whether s (spaces allowed) is an IBAN with the
// registered country structure and a correct mod-97 checksum.
func ValidIBAN(s string) bool {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return false
	}
	return iban.Validate(s) == nil
}

// FormatValidators returns all format and checksum validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.payment.iban", ruleName: "Format: IBAN",
			fieldPath: FieldIBAN, ruleType: domain.ValidationRuleChecksum, severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				return []ValidationResult{ibanCheck(FieldIBAN, d.Payment.IBAN, "Format: IBAN")}
			},
		},
		{
			ruleKey: "fmt.payment.bic", ruleName: "Format: BIC",
			fieldPath: FieldBIC, ruleType: domain.ValidationRuleRegex, severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				return []ValidationResult{regexCheck(FieldBIC, d.Payment.BIC, "8 or 11 character BIC", "Format: BIC", bicPattern)}
			},
		},
		{
			ruleKey: "fmt.invoice_date", ruleName: "Format: Invoice Date",
			fieldPath: FieldInvoiceDate, ruleType: domain.ValidationRuleRegex, severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				return []ValidationResult{dateCheck(FieldInvoiceDate, d.InvoiceDate, "Format: Invoice Date")}
			},
		},
		{
			ruleKey: "fmt.payment_due", ruleName: "Format: Payment Due Date",
			fieldPath: FieldPaymentDue, ruleType: domain.ValidationRuleRegex, severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				return []ValidationResult{dateCheck(FieldPaymentDue, d.PaymentDue, "Format: Payment Due Date")}
			},
		},
		{
			ruleKey: "fmt.cancelable_from", ruleName: "Format: Cancelable From",
			fieldPath: FieldCancelableFrom, ruleType: domain.ValidationRuleRegex, severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				return []ValidationResult{dateCheck(FieldCancelableFrom, d.CancelableFrom, "Format: Cancelable From")}
			},
		},
	}
}
