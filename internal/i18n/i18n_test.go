package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"telcheck/internal/i18n"
)

func TestLocalizer_T(t *testing.T) {
	en := i18n.NewLocalizer("en")
	de := i18n.NewLocalizer("de")

	assert.Equal(t, "Pay now", en.T("actions.pay_now.title"))
	assert.Equal(t, "Jetzt bezahlen", de.T("actions.pay_now.title"))
	assert.Equal(t, "Payment due date recognized: 14.10.2020.",
		en.T("risk.due_date_found", map[string]string{"date": "14.10.2020"}))
	assert.Equal(t, "3 Positionen erkannt.",
		de.T("risk.items_found", map[string]string{"count": "3"}))
}

func TestLocalizer_UnknownKey(t *testing.T) {
	l := i18n.NewLocalizer("de")
	assert.Equal(t, "no.such.key", l.T("no.such.key"))
	assert.Equal(t, "actions", l.T("actions"))
}

func TestLocalizer_SameKeysInEveryLocale(t *testing.T) {
	keys := []string{
		"risk.reminder", "risk.total_unknown", "risk.total_found", "risk.high_amount",
		"risk.due_date_found", "risk.due_date_missing", "risk.no_items", "risk.items_found",
		"warnings.no_text", "warnings.total_missing", "warnings.invoice_number_missing",
		"warnings.bank_details_missing", "warnings.invalid_field",
		"actions.pay_now.text", "actions.check_due_date.title", "actions.review_cancellation.text",
		"payment.reference", "payment.instructions", "report.title", "status.yellow",
	}
	for _, locale := range []string{i18n.LocaleEnglish, i18n.LocaleGerman} {
		l := i18n.NewLocalizer(locale)
		for _, k := range keys {
			assert.NotEqual(t, k, l.T(k), "%s missing in %s", k, locale)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":      "en",
		"de":    "de",
		"de-AT": "de",
		"DE":    "de",
		"en-GB": "en",
		"fr":    "en",
		"!!":    "en",
	}
	for in, want := range tests {
		assert.Equal(t, want, i18n.Normalize(in), "input %q", in)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	assert.Equal(t, "de", i18n.ParseAcceptLanguage("de-DE,de;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", i18n.ParseAcceptLanguage("en-US,en;q=0.9,de;q=0.5", "de"))
	assert.Equal(t, "de", i18n.ParseAcceptLanguage("", "de"))
	assert.Equal(t, "en", i18n.ParseAcceptLanguage("", ""))
}

func TestContextLocale(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, i18n.DefaultLocale, i18n.GetLocaleFromContext(ctx))

	ctx = i18n.WithLocale(ctx, i18n.LocaleGerman)
	assert.Equal(t, "de", i18n.GetLocaleFromContext(ctx))
	assert.Equal(t, "de", i18n.LocalizerFromContext(ctx).Locale())
}
