package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"telcheck/internal/domain"
	"telcheck/internal/money"
	"telcheck/internal/rules"
	"telcheck/internal/textnorm"
)

// fallbackLines is how many preceding lines may supply a description.
const fallbackLines = 2

var amountInLine = regexp.MustCompile(`(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2}`)

// lineAmount is a monetary amount located inside a line. start and end span
// the amount including its sign and currency symbol.
type lineAmount struct {
	start, end int
	value      decimal.Decimal
}

// findAmount returns the last amount in line that is not part of a longer
// number. The last one is used because rate columns ("19,00 %") precede the
// charged amount.
func findAmount(line string) (lineAmount, bool) {
	locs := amountInLine.FindAllStringIndex(line, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		if start > 0 && isNumberByte(line[start-1]) {
			continue
		}
		if end < len(line) && isDigit(line[end]) {
			continue
		}
		if start > 0 && line[start-1] == '-' && (start == 1 || !isAlnumByte(line[start-2])) {
			start--
		}
		value, ok := money.Parse(line[start:end])
		if !ok {
			continue
		}
		return lineAmount{start: start, end: end + currencySuffixLen(line[end:]), value: value}, true
	}
	return lineAmount{}, false
}

// currencySuffixLen returns the byte length of an optional " €" or " EUR"
// directly after an amount.
func currencySuffixLen(rest string) int {
	trimmed := strings.TrimLeft(rest, " \t\u00a0")
	skipped := len(rest) - len(trimmed)
	switch {
	case strings.HasPrefix(trimmed, money.Symbol):
		return skipped + len(money.Symbol)
	case len(trimmed) >= 3 && strings.EqualFold(trimmed[:3], "EUR") &&
		(len(trimmed) == 3 || !isAlnumByte(trimmed[3])):
		return skipped + 3
	}
	return 0
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isNumberByte(b byte) bool { return isDigit(b) || b == '.' || b == ',' }
func isAlnumByte(b byte) bool  { return isDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'z') }

func cleanDescription(s string) string {
	return strings.Trim(textnorm.CollapseWhitespace(s), " :;|-–")
}

// itemExtractor recovers line items from document text.
type itemExtractor struct {
	rules    *rules.LineItemRules
	cat      *Categorizer
	maxItems int
}

func (x *itemExtractor) longEnough(desc string) bool {
	return utf8.RuneCountInString(textnorm.Simplify(desc)) >= x.rules.MinDescriptionLength
}

func (x *itemExtractor) rejected(desc string) bool {
	f := textnorm.Fold(desc)
	return x.rules.Summary.Match(f) || x.rules.Metadata.Match(f)
}

// fallbackDescription picks the longest of the preceding lines that carry
// no amount of their own.
func (x *itemExtractor) fallbackDescription(lines []string, i int) string {
	best, bestLen := "", 0
	for j := i - 1; j >= 0 && j >= i-fallbackLines; j-- {
		if _, has := findAmount(lines[j]); has {
			continue
		}
		cand := cleanDescription(lines[j])
		if n := utf8.RuneCountInString(textnorm.Simplify(cand)); n > bestLen {
			best, bestLen = cand, n
		}
	}
	return best
}

func (x *itemExtractor) extract(text string) []domain.LineItem {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	items := []domain.LineItem{}
	seen := make(map[string]struct{})
	for i, line := range lines {
		if len(items) >= x.maxItems {
			break
		}
		amt, ok := findAmount(line)
		if !ok {
			continue
		}

		desc := cleanDescription(line[:amt.start] + " " + line[amt.end:])
		if desc != "" && x.rejected(desc) {
			continue
		}
		if !x.longEnough(desc) {
			desc = x.fallbackDescription(lines, i)
		}
		if !x.longEnough(desc) || x.rejected(desc) {
			continue
		}

		key := textnorm.Simplify(desc) + "|" + amt.value.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		category := x.cat.Categorize(desc)
		items = append(items, domain.LineItem{
			DescriptionSource: desc,
			DescriptionTarget: x.cat.Translate(desc),
			Amount:            domain.MonetaryAmount{Value: amt.value, Display: money.Format(amt.value)},
			Category:          category,
			Explanation:       x.cat.Explain(category),
		})
	}

	if len(items) == 1 {
		f := textnorm.Fold(items[0].DescriptionSource)
		if x.rules.Summary.Match(f) || x.rules.SingletonSummary.Match(f) {
			return []domain.LineItem{}
		}
	}
	return items
}
