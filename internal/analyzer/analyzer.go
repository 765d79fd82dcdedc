// Package analyzer turns the text of a German telecom invoice or payment
// reminder into a structured, explained AnalysisResult.
package analyzer

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
	"telcheck/internal/money"
	"telcheck/internal/rules"
	"telcheck/internal/textnorm"
	"telcheck/internal/validator"
)

// DefaultMaxItems is the default cap on extracted line items.
const DefaultMaxItems = 25

// Options tunes the analyzer. Zero values select the defaults.
type Options struct {
	MaxItems            int
	HighAmountThreshold decimal.Decimal
}

// Analyzer runs the full text pipeline. It holds no mutable state and may
// be shared between goroutines.
type Analyzer struct {
	rules  *rules.Ruleset
	engine *validator.Engine
	items  *itemExtractor
	scorer *Scorer
}

// New creates an Analyzer over rs. engine is optional; without it no
// per-field statuses are computed.
func New(rs *rules.Ruleset, engine *validator.Engine, opts Options) *Analyzer {
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.HighAmountThreshold.IsZero() {
		opts.HighAmountThreshold = DefaultHighAmount
	}
	return &Analyzer{
		rules:  rs,
		engine: engine,
		items: &itemExtractor{
			rules:    &rs.LineItems,
			cat:      NewCategorizer(rs),
			maxItems: opts.MaxItems,
		},
		scorer: NewScorer(opts.HighAmountThreshold),
	}
}

// Analyze analyzes text with English messages.
func (a *Analyzer) Analyze(text, fileName string) domain.AnalysisResult {
	return a.AnalyzeLocalized(context.Background(), domain.RawDocument{Text: text, FileName: fileName}, i18n.DefaultLocale)
}

// AnalyzeLocalized analyzes doc and renders reasons, warnings and actions in
// locale. Any text, including the empty string, yields a complete result.
func (a *Analyzer) AnalyzeLocalized(ctx context.Context, doc domain.RawDocument, locale string) domain.AnalysisResult {
	loc := i18n.NewLocalizer(locale)
	text := doc.Text
	folded := textnorm.Fold(text)

	f := extractFields(text)
	res := domain.AnalysisResult{
		FileName:          doc.FileName,
		TextLength:        utf8.RuneCountInString(text),
		Locale:            loc.Locale(),
		Provider:          a.rules.ProviderOf(folded, textnorm.Fold(doc.FileName)),
		DocumentType:      a.rules.DocumentTypeOf(folded),
		InvoiceNumber:     f.invoiceNumber,
		InvoiceDate:       f.invoiceDate,
		BillingPeriod:     f.billingPeriod,
		TotalAmount:       parseAmount(f.totalAmount),
		OutstandingAmount: parseAmount(f.outstandingAmount),
		PaymentDue:        f.paymentDue,
		CancelableFrom:    f.cancelableFrom,
		NoticePeriod:      f.noticePeriod,
		Payment: domain.PaymentInstructions{
			IBAN:         f.iban,
			BIC:          f.bic,
			Recipient:    f.recipient,
			Instructions: loc.T("payment.instructions"),
		},
		Items:       a.items.extract(text),
		Warnings:    []string{},
		NextActions: []domain.NextAction{},
	}
	if res.InvoiceNumber != "" {
		res.Payment.Reference = loc.T("payment.reference", map[string]string{"number": res.InvoiceNumber})
	}

	total := res.TotalAmount
	if total == nil {
		total = res.OutstandingAmount
	}
	res.Risk = a.scorer.Evaluate(RiskInput{
		DocumentType: res.DocumentType,
		Total:        total,
		DueDate:      res.PaymentDue,
		ItemCount:    len(res.Items),
	}, loc)

	var outcomes []validator.Outcome
	if a.engine != nil {
		outcomes = a.engine.Validate(ctx, &res)
		res.FieldStatus = validator.ComputeFieldStatuses(outcomes)
	}

	res.Warnings = warnings(&res, strings.TrimSpace(text) == "", outcomes, loc)
	res.NextActions = nextActions(&res, loc)
	return res
}

func parseAmount(s string) *domain.MonetaryAmount {
	if s == "" {
		return nil
	}
	v, ok := money.Parse(s)
	if !ok {
		return nil
	}
	return &domain.MonetaryAmount{Value: v, Display: money.Format(v)}
}

func warnings(res *domain.AnalysisResult, noText bool, outcomes []validator.Outcome, loc *i18n.Localizer) []string {
	out := []string{}
	if noText {
		out = append(out, loc.T("warnings.no_text"))
	}
	if res.TotalAmount == nil && res.OutstandingAmount == nil {
		out = append(out, loc.T("warnings.total_missing"))
	}
	if res.InvoiceNumber == "" {
		out = append(out, loc.T("warnings.invoice_number_missing"))
	}
	if res.Payment.IBAN == "" && res.Payment.BIC == "" {
		out = append(out, loc.T("warnings.bank_details_missing"))
	}
	// Missing values are already covered above; only report values that
	// were found but look wrong.
	for _, o := range validator.Failures(outcomes) {
		if o.Skipped || o.RuleType == domain.ValidationRuleRequired {
			continue
		}
		out = append(out, loc.T("warnings.invalid_field", map[string]string{
			"field":   o.FieldPath,
			"message": o.Message,
		}))
	}
	return out
}

func nextActions(res *domain.AnalysisResult, loc *i18n.Localizer) []domain.NextAction {
	action := func(key string) domain.NextAction {
		return domain.NextAction{
			Title: loc.T("actions." + key + ".title"),
			Text:  loc.T("actions." + key + ".text"),
		}
	}
	if res.DocumentType == domain.DocumentTypePaymentReminder {
		return []domain.NextAction{action("pay_now")}
	}
	out := []domain.NextAction{action("check_due_date")}
	if res.CancelableFrom != "" {
		out = append(out, action("review_cancellation"))
	}
	return out
}
