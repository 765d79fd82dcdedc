package analyzer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcheck/internal/analyzer"
	"telcheck/internal/domain"
	"telcheck/internal/i18n"
	"telcheck/internal/rules"
	"telcheck/internal/validator"
)

const telekomInvoice = `Telekom Deutschland GmbH
Rechnungsdatum 05.10.2020
Rechnungsnummer 75 6354 4858
Abrechnungszeitraum 01.09.2020 - 30.09.2020
Kundennummer 123456789
MagentaZuhause M Hybrid 29,36 €
Fehlerbehebung Technikereinsatz 69,95 €
Verbindungen ins Ausland 3,12 €
Nettobetrag 85,97 €
Umsatzsteuer 19 % 16,33 €
Rechnungsbetrag 102,30 €
Der Rechnungsbetrag wird am 14.10.2020 von Ihrem Konto abgebucht.
Kündbar ab 01.04.2021
Kündigungsfrist 1 Monat
Zahlungsempfänger Telekom Deutschland GmbH
IBAN DE02 1203 0000 0000 2020 51
BIC BYLADEM1001`

func newAnalyzer(t *testing.T, opts analyzer.Options) *analyzer.Analyzer {
	t.Helper()
	rs, err := rules.Default()
	require.NoError(t, err)
	return analyzer.New(rs, validator.NewEngine(validator.NewDefaultRegistry()), opts)
}

func TestAnalyze_ScenarioInvoiceWithoutDueDate(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("Rechnungsnummer 12345678\nRechnungsbetrag 29,36 €", "upload.pdf")

	assert.Equal(t, domain.DocumentTypeInvoice, res.DocumentType)
	assert.Equal(t, "12345678", res.InvoiceNumber)
	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "29,36 €", res.TotalAmount.Display)
	assert.True(t, res.TotalAmount.Value.Equal(decimal.RequireFromString("29.36")))
	assert.Equal(t, domain.RiskYellow, res.Risk.Status)
	assert.LessOrEqual(t, res.Risk.Score, 65)
	assert.Empty(t, res.PaymentDue)
}

func TestAnalyze_ScenarioReminder(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("Mahnung\nOffener Betrag 67,18 €", "")

	assert.Equal(t, domain.DocumentTypePaymentReminder, res.DocumentType)
	assert.Equal(t, domain.RiskRed, res.Risk.Status)
	assert.Equal(t, 20, res.Risk.Score)
	require.NotNil(t, res.OutstandingAmount)
	assert.Equal(t, "67,18 €", res.OutstandingAmount.Display)
	require.Len(t, res.NextActions, 1)
	assert.Equal(t, "Pay now", res.NextActions[0].Title)
}

func TestAnalyze_ScenarioEmptyText(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("", "")

	assert.Equal(t, domain.ProviderUnknown, res.Provider)
	assert.Equal(t, domain.DocumentTypeUnknown, res.DocumentType)
	assert.Empty(t, res.InvoiceNumber)
	assert.Nil(t, res.TotalAmount)
	assert.Nil(t, res.OutstandingAmount)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, domain.RiskYellow, res.Risk.Status)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "No text could be extracted")
	assert.Equal(t, 0, res.TextLength)
}

func TestAnalyze_ScenarioSingleMonthlyItem(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("MagentaZuhause M Hybrid 29,36 €", "")

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, "MagentaZuhause M Hybrid", item.DescriptionSource)
	assert.Equal(t, domain.CategoryMonthly, item.Category)
	assert.Equal(t, "29,36 €", item.Amount.Display)
	assert.NotEmpty(t, item.Explanation)
	assert.Equal(t, domain.ProviderTelekom, res.Provider)
}

func TestAnalyze_CompleteInvoice(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze(telekomInvoice, "rechnung_oktober.pdf")

	assert.Equal(t, domain.ProviderTelekom, res.Provider)
	assert.Equal(t, domain.DocumentTypeInvoice, res.DocumentType)
	assert.Equal(t, "75 6354 4858", res.InvoiceNumber)
	assert.Equal(t, "05.10.2020", res.InvoiceDate)
	assert.Equal(t, "01.09.2020 - 30.09.2020", res.BillingPeriod)
	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "102,30 €", res.TotalAmount.Display)
	assert.Nil(t, res.OutstandingAmount)
	assert.Equal(t, "14.10.2020", res.PaymentDue)
	assert.Equal(t, "01.04.2021", res.CancelableFrom)
	assert.Equal(t, "1 Monat", res.NoticePeriod)

	assert.Equal(t, "DE02120300000000202051", res.Payment.IBAN)
	assert.Equal(t, "BYLADEM1001", res.Payment.BIC)
	assert.Equal(t, "Telekom Deutschland GmbH", res.Payment.Recipient)
	assert.Equal(t, "Invoice 75 6354 4858", res.Payment.Reference)
	assert.NotEmpty(t, res.Payment.Instructions)

	var categories []domain.ChargeCategory
	for _, it := range res.Items {
		categories = append(categories, it.Category)
	}
	assert.Equal(t, []domain.ChargeCategory{
		domain.CategoryMonthly,
		domain.CategoryOneTime,
		domain.CategoryUsage,
		domain.CategoryTax,
	}, categories)

	assert.Equal(t, domain.RiskGreen, res.Risk.Status)
	assert.Equal(t, 85, res.Risk.Score)
	assert.Empty(t, res.Warnings)

	require.Len(t, res.NextActions, 2)
	assert.Equal(t, "Check due date", res.NextActions[0].Title)
	assert.Equal(t, "Cancellation", res.NextActions[1].Title)

	for field, st := range res.FieldStatus {
		assert.Equal(t, domain.FieldStatusValid, st.Status, field)
	}
}

func TestAnalyze_WarningsOrder(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("Vodafone GmbH\nIhre Rechnung", "")

	assert.Equal(t, domain.ProviderVodafone, res.Provider)
	assert.Equal(t, []string{
		"Amount not reliably recognized (check the text quality of the document).",
		"Invoice number not reliably recognized.",
		"No bank details (IBAN/BIC) reliably recognized; they may be missing depending on provider and format.",
	}, res.Warnings)
}

func TestAnalyze_BankDetailsEitherIsEnough(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("Rechnungsnummer 4711\nBIC BYLADEM1001", "")

	for _, w := range res.Warnings {
		assert.NotContains(t, w, "IBAN/BIC")
	}
}

func TestAnalyze_InvalidIBANIsReported(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.Analyze("Rechnungsnummer 4711\nIBAN DE03 1203 0000 0000 2020 51", "")

	assert.Equal(t, "DE03120300000000202051", res.Payment.IBAN)
	assert.Equal(t, domain.FieldStatusInvalid, res.FieldStatus["payment.iban"].Status)
	var found bool
	for _, w := range res.Warnings {
		if strings.Contains(w, "payment.iban") {
			found = true
		}
	}
	assert.True(t, found, "expected an invalid IBAN warning in %v", res.Warnings)
}

func TestAnalyze_HighAmountThreshold(t *testing.T) {
	text := "Rechnungsnummer 4711\nZahlungsziel 30.10.2020\nMagentaMobil L Tarif 199,95 €\nRechnungsbetrag 199,95 €"

	res := newAnalyzer(t, analyzer.Options{}).Analyze(text, "")
	assert.Equal(t, domain.RiskYellow, res.Risk.Status)
	assert.Equal(t, 55, res.Risk.Score)

	raised := newAnalyzer(t, analyzer.Options{HighAmountThreshold: decimal.NewFromInt(500)}).Analyze(text, "")
	assert.Equal(t, domain.RiskGreen, raised.Risk.Status)
	assert.Equal(t, 85, raised.Risk.Score)
}

func TestAnalyze_MaxItems(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Zusatzoption Nummer ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString(" 1,99 €\n")
	}

	res := newAnalyzer(t, analyzer.Options{MaxItems: 20}).Analyze(b.String(), "")
	assert.Len(t, res.Items, 20)

	res = newAnalyzer(t, analyzer.Options{}).Analyze(b.String(), "")
	assert.Len(t, res.Items, analyzer.DefaultMaxItems)
}

func TestAnalyzeLocalized_German(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	res := a.AnalyzeLocalized(context.Background(), domain.RawDocument{Text: "Mahnung\nOffener Betrag 67,18 €"}, "de-DE")

	assert.Equal(t, i18n.LocaleGerman, res.Locale)
	require.Len(t, res.NextActions, 1)
	assert.NotEqual(t, "Pay now", res.NextActions[0].Title)
	assert.NotEqual(t, "actions.pay_now.title", res.NextActions[0].Title)
}

func TestAnalyze_WithoutEngine(t *testing.T) {
	rs, err := rules.Default()
	require.NoError(t, err)
	a := analyzer.New(rs, nil, analyzer.Options{})

	res := a.Analyze(telekomInvoice, "")

	assert.Nil(t, res.FieldStatus)
	assert.Len(t, res.Items, 4)
}

func TestAnalyze_NeverPanics(t *testing.T) {
	a := newAnalyzer(t, analyzer.Options{})

	inputs := []string{
		"",
		" \n\t\n ",
		"\x00\xff\xfe",
		"€€€ ,,, ... 0,00",
		"-",
		"Rechnungsnummer",
		"Rechnungsnummer \n",
		"IBAN DE",
		"BIC",
		"Abrechnungszeitraum 31.02.2020 - 01.01.2020",
		"Zahlungsziel 99.99.9999",
		strings.Repeat("9", 10000) + ",99",
		strings.Repeat("Grundgebühr 1,00 €\n", 500),
		"1.234.567,89 €\n-5,00 €\n,50\n12,",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			res := a.Analyze(in, in)
			assert.NotNil(t, res.Items)
			assert.NotNil(t, res.Warnings)
			assert.NotNil(t, res.Risk.Reasons)
		})
	}
}
