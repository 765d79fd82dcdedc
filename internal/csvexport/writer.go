package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columnKeys are the message keys of the header row.
var columnKeys = []string{
	"report.description_source",
	"report.description_target",
	"report.amount",
	"report.category",
	"report.note",
}

// Writer wraps csv.Writer for exporting line items as CSV.
type Writer struct {
	csv *csv.Writer
	loc *i18n.Localizer
}

// NewWriter creates a Writer that writes CSV with headers in locale to w.
// German output uses ';' as separator, which is what German Excel expects.
func NewWriter(w io.Writer, locale string) *Writer {
	loc := i18n.NewLocalizer(locale)
	cw := csv.NewWriter(w)
	if loc.Locale() == i18n.LocaleGerman {
		cw.Comma = ';'
	}
	return &Writer{csv: cw, loc: loc}
}

// WriteHeader writes the localized header row.
func (w *Writer) WriteHeader() error {
	header := make([]string, len(columnKeys))
	for i, k := range columnKeys {
		header[i] = w.loc.T(k)
	}
	return w.csv.Write(header)
}

// WriteItems converts line items to CSV rows and writes them.
func (w *Writer) WriteItems(items []domain.LineItem) error {
	for i := range items {
		if err := w.csv.Write(w.itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// itemToRow converts a line item to a row. Amounts use the locale's decimal
// separator and no currency symbol so that spreadsheets read them as numbers.
func (w *Writer) itemToRow(it *domain.LineItem) []string {
	amount := it.Amount.Value.StringFixed(2)
	if w.loc.Locale() == i18n.LocaleGerman {
		amount = strings.Replace(amount, ".", ",", 1)
	}
	return []string{
		it.DescriptionSource,
		it.DescriptionTarget,
		amount,
		w.loc.T("category." + string(it.Category)),
		it.Explanation,
	}
}

// Renderer exports the line items of an analysis as a CSV download.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Format returns domain.ReportFormatCSV.
func (r *Renderer) Format() domain.ReportFormat { return domain.ReportFormatCSV }

// ContentType returns the MIME type of the rendered file.
func (r *Renderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render writes BOM, header and one row per line item.
func (r *Renderer) Render(result *domain.AnalysisResult, locale string) ([]byte, error) {
	if result == nil {
		return nil, domain.ErrInvalidResult
	}
	var buf bytes.Buffer
	buf.Write(BOM)

	w := NewWriter(&buf, locale)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteItems(result.Items); err != nil {
		return nil, fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// DefaultBaseName is the attachment name of every export.
const DefaultBaseName = "rechnungs-check_ergebnis"

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_base}.{format}; an empty base selects DefaultBaseName.
func BuildFilename(base string, format domain.ReportFormat) string {
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = DefaultBaseName
	}
	return fmt.Sprintf("%s.%s", sanitized, format)
}
