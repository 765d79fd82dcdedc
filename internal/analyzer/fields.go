package analyzer

import (
	"regexp"
	"strings"

	"github.com/jacoelho/banking/iban"

	"telcheck/internal/money"
	"telcheck/internal/textnorm"
)

const (
	datePattern = `\d{2}\.\d{2}\.\d{4}`

	// gap joins a label to its value: up to 40 non-digit characters on the
	// label's line, optionally continuing at the start of the next line.
	// A gap that names another field is rejected by find.
	gap = `(?P<gap>[^\d\n]{0,40}?\n?[ \t]*)`

	// lineSep joins a label to a free-text value on the same line.
	lineSep = `[ \t]*[:\-]?[ \t]*`

	invoiceNumberValue = `\d(?:[\d ]*\d)?`
)

// fieldPatterns is an ordered list of candidate patterns for one field.
// Every pattern has a named group "value"; the first pattern that matches wins.
type fieldPatterns []*regexp.Regexp

// labeled builds a case-insensitive "label, gap, value" pattern.
func labeled(label, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + gap + `(?P<value>` + value + `)`)
}

// toEndOfLine builds a pattern capturing the rest of the label's line.
func toEndOfLine(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + lineSep + `(?P<value>[^\n\r]+)`)
}

func (p fieldPatterns) find(text string) (value string, end int) {
	for _, re := range p {
		idx := 2 * re.SubexpIndex("value")
		gapIdx := 2 * re.SubexpIndex("gap")
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if gapIdx >= 0 && m[gapIdx] >= 0 && namesOtherField(text[m[gapIdx]:m[gapIdx+1]]) {
				continue
			}
			if v := strings.TrimSpace(text[m[idx]:m[idx+1]]); v != "" {
				return v, m[idx+1]
			}
		}
	}
	return "", -1
}

// otherFieldSuffixes end the words that label a different field
// ("Kundennummer", "Kundennr", "Nettobetrag", "Lieferdatum").
var otherFieldSuffixes = []string{"nummer", "nr", "betrag", "datum", "summe", "zeitraum"}

// namesOtherField reports whether a label-to-value gap contains another
// label, in which case the value belongs to that label.
func namesOtherField(s string) bool {
	for _, w := range textnorm.Words(s) {
		if w == "iban" || w == "bic" {
			return true
		}
		for _, suffix := range otherFieldSuffixes {
			if strings.HasSuffix(w, suffix) {
				return true
			}
		}
	}
	return false
}

func (p fieldPatterns) first(text string) string {
	v, _ := p.find(text)
	return v
}

var (
	// "Rechnungsnummer 12345678", "Rechnungs-Nummer: 75 6354 4858", "Rechnung Nr. 4711"
	invoiceNumberPatterns = fieldPatterns{
		labeled(`rechnungs[- ]?nummer`, invoiceNumberValue),
		labeled(`rechnung\s*nr\.?`, invoiceNumberValue),
		labeled(`rechnungs-?nr\.?`, invoiceNumberValue),
	}

	// "Rechnungsdatum 01.10.2020" before the generic "Datum 01.10.2020"
	invoiceDatePatterns = fieldPatterns{
		labeled(`rechnungsdatum`, datePattern),
		labeled(`\bdatum`, datePattern),
		labeled(`rechnung\s+vom`, datePattern),
	}

	// "Abrechnungszeitraum: 01.09.2020 - 30.09.2020", "Zeitraum vom 01.09.2020 bis 30.09.2020"
	billingPeriodPatterns = fieldPatterns{
		labeled(`(?:abrechnungszeitraum|leistungszeitraum|rechnungszeitraum|zeitraum)`,
			datePattern+`\s*(?:-|–|bis)\s*`+datePattern),
	}

	totalAmountPatterns = fieldPatterns{
		labeled(`rechnungsbetrag`, money.Pattern),
		labeled(`zu\s+zahlender\s+betrag`, money.Pattern),
		labeled(`zu\s+zahlen`, money.Pattern),
		labeled(`gesamtbetrag`, money.Pattern),
		labeled(`(?:gesamtsumme|\bsumme)`, money.Pattern),
		labeled(`bitte\s+überweisen\s+sie\s+(?:den\s+)?betrag\s+von`, money.Pattern),
	}

	outstandingAmountPatterns = fieldPatterns{
		labeled(`offener\s+betrag`, money.Pattern),
		labeled(`noch\s+offen`, money.Pattern),
		labeled(`zahlbetrag`, money.Pattern),
	}

	paymentDuePatterns = fieldPatterns{
		labeled(`zahlungsziel`, datePattern),
		labeled(`fällig\s+(?:am|zum|bis)`, datePattern),
		labeled(`bitte\s+zahlen\s+bis`, datePattern),
		labeled(`zahlbar\s+bis`, datePattern),
		// "Der Rechnungsbetrag wird am 14.10.2020 von Ihrem Konto abgebucht."
		regexp.MustCompile(`(?i)wird\s+am\s+(?P<value>` + datePattern + `)[^\n]{0,40}?abgebucht`),
	}

	cancelableFromPatterns = fieldPatterns{
		labeled(`(?:kündbar\s+ab|kündigung\s+möglich\s+ab|frühestens\s+kündbar\s+zum)`, datePattern),
		labeled(`(?:vertragsende|mindestlaufzeit\s+bis|vertragslaufzeit\s+bis)`, datePattern),
	}

	noticePeriodPatterns = fieldPatterns{
		toEndOfLine(`kündigungsfrist`),
	}

	ibanPatterns = fieldPatterns{
		regexp.MustCompile(`\b(?i:iban)` + lineSep + `(?P<value>[A-Z]{2}\d{2}(?:[ ]?[A-Z0-9]{4}){3,7}(?:[ ]?[A-Z0-9]{1,4})?)`),
	}

	bicPatterns = fieldPatterns{
		regexp.MustCompile(`\b(?i:bic|swift)` + lineSep + `(?P<value>[A-Z]{6}[A-Z0-9]{2}(?:[A-Z0-9]{3})?)\b`),
	}

	// Payment-specific labels first; "Rechnungsempfänger" is the customer,
	// hence the word boundary on the generic label.
	recipientPatterns = fieldPatterns{
		toEndOfLine(`zahlungsempfänger`),
		toEndOfLine(`begünstigter`),
		toEndOfLine(`kontoinhaber`),
		toEndOfLine(`\bempfänger`),
	}
)

// fields holds the singleton values found in a document.
type fields struct {
	invoiceNumber     string
	invoiceDate       string
	billingPeriod     string
	totalAmount       string
	outstandingAmount string
	paymentDue        string
	cancelableFrom    string
	noticePeriod      string
	iban              string
	bic               string
	recipient         string
}

func extractFields(text string) fields {
	return fields{
		invoiceNumber:     extractInvoiceNumber(text),
		invoiceDate:       invoiceDatePatterns.first(text),
		billingPeriod:     textnorm.CollapseWhitespace(billingPeriodPatterns.first(text)),
		totalAmount:       totalAmountPatterns.first(text),
		outstandingAmount: outstandingAmountPatterns.first(text),
		paymentDue:        paymentDuePatterns.first(text),
		cancelableFrom:    cancelableFromPatterns.first(text),
		noticePeriod:      textnorm.CollapseWhitespace(noticePeriodPatterns.first(text)),
		iban:              normalizeIBAN(ibanPatterns.first(text)),
		bic:               strings.ToUpper(bicPatterns.first(text)),
		recipient:         textnorm.CollapseWhitespace(recipientPatterns.first(text)),
	}
}

// extractInvoiceNumber allows spaces inside the number ("75 6354 4858") but
// drops a trailing group that is really the integer part of an amount
// printed on the same line ("12345678 29,36").
func extractInvoiceNumber(text string) string {
	v, end := invoiceNumberPatterns.find(text)
	if v == "" {
		return ""
	}
	rest := text[end:]
	if len(rest) >= 2 && (rest[0] == ',' || rest[0] == '.') && rest[1] >= '0' && rest[1] <= '9' {
		if i := strings.LastIndexByte(v, ' '); i > 0 {
			v = strings.TrimSpace(v[:i])
		} else {
			return ""
		}
	}
	return textnorm.CollapseWhitespace(v)
}

// minIBANLength is the shortest registered IBAN (Norway).
const minIBANLength = 15

// normalizeIBAN removes grouping spaces. When a code printed after the IBAN
// on the same line was glued onto it, the longest prefix that is a valid
// IBAN is kept; an IBAN that never validates is returned whole.
func normalizeIBAN(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	for n := len(s); n >= minIBANLength; n-- {
		if iban.Validate(s[:n]) == nil {
			return s[:n]
		}
	}
	return s
}
