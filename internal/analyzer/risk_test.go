package analyzer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcheck/internal/analyzer"
	"telcheck/internal/domain"
	"telcheck/internal/i18n"
)

func amount(s string) *domain.MonetaryAmount {
	v := decimal.RequireFromString(s)
	return &domain.MonetaryAmount{Value: v, Display: s}
}

func TestScorer_Evaluate(t *testing.T) {
	scorer := analyzer.NewScorer(analyzer.DefaultHighAmount)
	loc := i18n.NewLocalizer("en")

	tests := []struct {
		name       string
		in         analyzer.RiskInput
		wantStatus domain.RiskStatus
		wantScore  int
	}{
		{
			name: "complete invoice stays green",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("29.36"),
				DueDate: "14.10.2020", ItemCount: 3,
			},
			wantStatus: domain.RiskGreen, wantScore: 85,
		},
		{
			name: "reminder short-circuits",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypePaymentReminder, Total: amount("29.36"),
				DueDate: "14.10.2020", ItemCount: 3,
			},
			wantStatus: domain.RiskRed, wantScore: 20,
		},
		{
			name: "missing total",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, DueDate: "14.10.2020", ItemCount: 3,
			},
			wantStatus: domain.RiskYellow, wantScore: 60,
		},
		{
			name: "amount at threshold",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("150.00"),
				DueDate: "14.10.2020", ItemCount: 3,
			},
			wantStatus: domain.RiskYellow, wantScore: 55,
		},
		{
			name: "amount just below threshold",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("149.99"),
				DueDate: "14.10.2020", ItemCount: 3,
			},
			wantStatus: domain.RiskGreen, wantScore: 85,
		},
		{
			name: "missing due date",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("29.36"), ItemCount: 3,
			},
			wantStatus: domain.RiskYellow, wantScore: 65,
		},
		{
			name: "no items",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("29.36"), DueDate: "14.10.2020",
			},
			wantStatus: domain.RiskYellow, wantScore: 60,
		},
		{
			name:       "nothing found",
			in:         analyzer.RiskInput{DocumentType: domain.DocumentTypeUnknown},
			wantStatus: domain.RiskYellow, wantScore: 60,
		},
		{
			name: "high amount and missing due date keep the lowest ceiling",
			in: analyzer.RiskInput{
				DocumentType: domain.DocumentTypeInvoice, Total: amount("250.00"), ItemCount: 1,
			},
			wantStatus: domain.RiskYellow, wantScore: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Evaluate(tt.in, loc)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.NotEmpty(t, got.Reasons)
		})
	}
}

func TestScorer_TraceIsMonotonic(t *testing.T) {
	scorer := analyzer.NewScorer(analyzer.DefaultHighAmount)
	loc := i18n.NewLocalizer("en")

	inputs := []analyzer.RiskInput{
		{DocumentType: domain.DocumentTypeInvoice},
		{DocumentType: domain.DocumentTypeInvoice, Total: amount("999.00")},
		{DocumentType: domain.DocumentTypeInvoice, Total: amount("12.00"), DueDate: "01.01.2021"},
		{DocumentType: domain.DocumentTypeUnknown, ItemCount: 2},
	}
	for _, in := range inputs {
		_, steps := scorer.Trace(in, loc)
		require.NotEmpty(t, steps)
		assert.Equal(t, "start", steps[0].Rule)
		for i := 1; i < len(steps); i++ {
			assert.LessOrEqual(t, steps[i].Score, steps[i-1].Score, steps[i].Rule)
			assert.GreaterOrEqual(t, steps[i].Status.Severity(), steps[i-1].Status.Severity(), steps[i].Rule)
		}
	}
}

func TestScorer_TraceRuleOrder(t *testing.T) {
	scorer := analyzer.NewScorer(analyzer.DefaultHighAmount)

	_, steps := scorer.Trace(analyzer.RiskInput{DocumentType: domain.DocumentTypeInvoice}, i18n.NewLocalizer("en"))

	var rules []string
	for _, s := range steps {
		rules = append(rules, s.Rule)
	}
	assert.Equal(t, []string{"start", "total", "due_date", "items"}, rules)
}

func TestScorer_Reasons(t *testing.T) {
	scorer := analyzer.NewScorer(analyzer.DefaultHighAmount)

	got := scorer.Evaluate(analyzer.RiskInput{
		DocumentType: domain.DocumentTypeInvoice,
		Total:        &domain.MonetaryAmount{Value: decimal.RequireFromString("210.5"), Display: "210,50 €"},
		ItemCount:    2,
	}, i18n.NewLocalizer("en"))

	assert.Equal(t, []string{
		"Amount recognized: 210,50 €.",
		"High amount (at least 150,00 €).",
		"Payment due date not recognized (may be missing in the document).",
		"2 line items recognized.",
	}, got.Reasons)
}
