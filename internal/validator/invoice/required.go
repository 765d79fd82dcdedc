package invoice

import (
	"context"
	"fmt"

	"telcheck/internal/domain"
)

// requiredFieldValidator checks that a field was extracted at all.
type requiredFieldValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	extract   func(*domain.AnalysisResult) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredFieldValidator) Validate(_ context.Context, data *domain.AnalysisResult) []ValidationResult {
	val := v.extract(data)
	return []ValidationResult{{
		Passed:        val != "",
		FieldPath:     v.fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       fieldMessage(val != "", v.ruleName, v.fieldPath),
	}}
}

func fieldMessage(passed bool, ruleName, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	}
	return fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
}

// RequiredFieldValidators returns the presence checks. All of them are
// warnings: a missing value is uncertain, not wrong.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.total_amount", ruleName: "Required: Amount",
			fieldPath: FieldTotalAmount, severity: domain.ValidationSeverityWarning,
			extract: func(d *domain.AnalysisResult) string {
				if d.TotalAmount != nil {
					return d.TotalAmount.Display
				}
				return domain.DisplayAmount(d.OutstandingAmount)
			},
		},
		{
			ruleKey: "req.invoice_number", ruleName: "Required: Invoice Number",
			fieldPath: FieldInvoiceNumber, severity: domain.ValidationSeverityWarning,
			extract: func(d *domain.AnalysisResult) string { return d.InvoiceNumber },
		},
		{
			ruleKey: "req.payment_due", ruleName: "Required: Payment Due Date",
			fieldPath: FieldPaymentDue, severity: domain.ValidationSeverityWarning,
			extract: func(d *domain.AnalysisResult) string { return d.PaymentDue },
		},
		{
			ruleKey: "req.payment.bank_details", ruleName: "Required: Bank Details",
			fieldPath: FieldIBAN, severity: domain.ValidationSeverityWarning,
			extract: func(d *domain.AnalysisResult) string {
				if d.Payment.IBAN != "" {
					return d.Payment.IBAN
				}
				return d.Payment.BIC
			},
		},
	}
}
