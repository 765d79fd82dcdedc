package invoice

import (
	"context"
	"fmt"
	"regexp"

	"telcheck/internal/domain"
)

var periodDates = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

// logicalValidator checks relations between dates.
type logicalValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*domain.AnalysisResult) []ValidationResult
}

func (v *logicalValidator) RuleKey() string                     { return v.ruleKey }
func (v *logicalValidator) RuleName() string                    { return v.ruleName }
func (v *logicalValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleLogical }
func (v *logicalValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *logicalValidator) Validate(_ context.Context, data *domain.AnalysisResult) []ValidationResult {
	return v.validate(data)
}

// LogicalValidators returns the date relation checks.
func LogicalValidators() []*logicalValidator {
	return []*logicalValidator{
		{
			ruleKey: "logic.billing_period.order", ruleName: "Logical: Billing Period Order",
			severity: domain.ValidationSeverityError,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				const expected = "start date not after end date"
				if d.BillingPeriod == "" {
					return []ValidationResult{skipped(FieldBillingPeriod, expected, "Logical: Billing Period Order")}
				}
				dates := periodDates.FindAllString(d.BillingPeriod, 2)
				if len(dates) != 2 {
					return []ValidationResult{{
						Passed: false, FieldPath: FieldBillingPeriod,
						ExpectedValue: expected, ActualValue: d.BillingPeriod,
						Message: "Logical: Billing Period Order: period does not contain two dates",
					}}
				}
				start, errStart := ParseDate(dates[0])
				end, errEnd := ParseDate(dates[1])
				passed := errStart == nil && errEnd == nil && !start.After(end)
				msg := fmt.Sprintf("Logical: Billing Period Order: %s to %s is ordered", dates[0], dates[1])
				if !passed {
					msg = fmt.Sprintf("Logical: Billing Period Order: %s to %s is not a valid period", dates[0], dates[1])
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: FieldBillingPeriod,
					ExpectedValue: expected, ActualValue: d.BillingPeriod, Message: msg,
				}}
			},
		},
		{
			ruleKey: "logic.payment_due.after_invoice_date", ruleName: "Logical: Due Date After Invoice Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.AnalysisResult) []ValidationResult {
				const expected = "payment due on or after invoice date"
				if d.PaymentDue == "" || d.InvoiceDate == "" {
					return []ValidationResult{skipped(FieldPaymentDue, expected, "Logical: Due Date After Invoice Date")}
				}
				due, errDue := ParseDate(d.PaymentDue)
				issued, errIssued := ParseDate(d.InvoiceDate)
				if errDue != nil || errIssued != nil {
					// format rules already report unparseable dates
					return []ValidationResult{skipped(FieldPaymentDue, expected, "Logical: Due Date After Invoice Date")}
				}
				passed := !due.Before(issued)
				msg := "Logical: Due Date After Invoice Date: due date follows invoice date"
				if !passed {
					msg = fmt.Sprintf("Logical: Due Date After Invoice Date: %s is before %s", d.PaymentDue, d.InvoiceDate)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: FieldPaymentDue,
					ExpectedValue: expected, ActualValue: d.PaymentDue, Message: msg,
				}}
			},
		},
	}
}
