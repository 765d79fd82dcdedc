// Package money parses and formats euro amounts written the German way
// ("1.234,56 €").
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency symbol appended to formatted amounts.
const Symbol = "€"

// Pattern matches an amount with thousands dots and exactly two decimals,
// the form used for amounts inside running text. It has no anchors so it can
// be embedded into larger expressions.
const Pattern = `-?(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2}`

var strictAmount = regexp.MustCompile(`^-?(?:\d{1,3}(?:\.\d{3})+|\d+)(?:,\d{1,2})?$`)

// Parse reads a German formatted amount. Thousands dots, a trailing "€" or
// "EUR" and surrounding whitespace are tolerated. The second return value is
// false for anything that is not a well-formed amount.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
	switch {
	case strings.HasSuffix(s, Symbol):
		s = strings.TrimSuffix(s, Symbol)
	case strings.HasSuffix(strings.ToUpper(s), "EUR"):
		s = s[:len(s)-3]
	}
	s = strings.TrimSpace(s)
	if !strictAmount.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders d as "1.234,56 €".
func Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg && fixed != "0.00" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	b.WriteString(" ")
	b.WriteString(Symbol)
	return b.String()
}
