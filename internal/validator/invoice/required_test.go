package invoice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcheck/internal/domain"
	"telcheck/internal/validator/invoice"
)

func TestRequiredFieldValidators_AllWarnings(t *testing.T) {
	for _, v := range invoice.RequiredFieldValidators() {
		assert.Equal(t, domain.ValidationRuleRequired, v.RuleType(), v.RuleKey())
		assert.Equal(t, domain.ValidationSeverityWarning, v.Severity(), v.RuleKey())
	}
}

func TestRequired_Empty(t *testing.T) {
	ctx := context.Background()
	for _, v := range invoice.RequiredFieldValidators() {
		results := v.Validate(ctx, &domain.AnalysisResult{})
		require.Len(t, results, 1, v.RuleKey())
		assert.False(t, results[0].Passed, v.RuleKey())
		assert.Contains(t, results[0].Message, "missing or empty")
	}
}

func TestRequired_AmountFallsBackToOutstanding(t *testing.T) {
	v := findRule("req.total_amount")
	require.NotNil(t, v)

	res := &domain.AnalysisResult{OutstandingAmount: &domain.MonetaryAmount{
		Value:   decimal.RequireFromString("89.90"),
		Display: "89,90 €",
	}}
	results := v.Validate(context.Background(), res)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "89,90 €", results[0].ActualValue)
}

func TestRequired_BankDetailsAcceptBIC(t *testing.T) {
	v := findRule("req.payment.bank_details")
	require.NotNil(t, v)

	results := v.Validate(context.Background(), &domain.AnalysisResult{
		Payment: domain.PaymentInstructions{BIC: "BYLADEM1001"},
	})
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.Equal(t, invoice.FieldIBAN, results[0].FieldPath)
}
