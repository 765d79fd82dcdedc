// Package invoice holds the built-in validation rules for analyzed telecom
// invoices.
package invoice

import "fmt"

// ValidationResult is the outcome of one check on one field.
type ValidationResult struct {
	Passed        bool
	Skipped       bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Field paths used in results and in the per-field status map.
const (
	FieldInvoiceNumber  = "invoice_number"
	FieldInvoiceDate    = "invoice_date"
	FieldBillingPeriod  = "billing_period"
	FieldTotalAmount    = "total_amount"
	FieldPaymentDue     = "payment_due"
	FieldCancelableFrom = "cancelable_from"
	FieldIBAN           = "payment.iban"
	FieldBIC            = "payment.bic"
)

func skipped(fieldPath, expected, ruleName string) ValidationResult {
	return ValidationResult{
		Passed: true, Skipped: true, FieldPath: fieldPath,
		ExpectedValue: expected,
		Message:       fmt.Sprintf("%s: field is empty, skipping", ruleName),
	}
}
