package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
)

// PDFRenderer renders a one-document A4 report.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Format returns domain.ReportFormatPDF.
func (r *PDFRenderer) Format() domain.ReportFormat { return domain.ReportFormatPDF }

// ContentType returns the MIME type of the rendered file.
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render builds the report. Texts are converted to cp1252 for the core fonts,
// which covers umlauts and the euro sign.
func (r *PDFRenderer) Render(res *domain.AnalysisResult, locale string) ([]byte, error) {
	if res == nil {
		return nil, domain.ErrInvalidResult
	}
	loc := i18n.NewLocalizer(locale)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(17, 17, 17)
	pdf.SetAutoPageBreak(true, 17)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(size float64, text string) {
		pdf.SetFont("Arial", "BU", size)
		pdf.SetTextColor(17, 17, 17)
		pdf.Cell(0, 8, tr(text))
		pdf.Ln(9)
	}
	line := func(gray int, text string) {
		pdf.SetTextColor(gray, gray, gray)
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
	}

	pdf.AddPage()
	heading(16, loc.T("report.title"))

	pdf.SetFont("Arial", "", 11)
	for _, row := range summaryRows(res, loc) {
		line(17, row.label+": "+row.value)
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 11)
	line(17, fmt.Sprintf("%s: %s (%s %d/100)", loc.T("report.traffic_light"),
		strings.ToUpper(statusLabel(res.Risk.Status, loc)), loc.T("report.score"), res.Risk.Score))
	pdf.SetFont("Arial", "", 10)
	for _, reason := range res.Risk.Reasons {
		line(17, "- "+reason)
	}

	if len(res.Warnings) > 0 {
		pdf.Ln(3)
		heading(12, loc.T("report.warnings"))
		pdf.SetFont("Arial", "", 10)
		for _, w := range limit(res.Warnings, maxListEntries) {
			line(17, "- "+w)
		}
	}

	pdf.Ln(3)
	heading(13, loc.T("report.items"))
	pdf.SetFont("Arial", "", 10)
	items := limit(res.Items, maxReportItems)
	if len(items) == 0 {
		line(85, loc.T("report.none"))
	}
	for i, it := range items {
		line(17, fmt.Sprintf("%d. %s  (%s)", i+1, it.DescriptionSource, it.Amount.Display))
		line(51, "   EN: "+it.DescriptionTarget)
		line(85, fmt.Sprintf("   %s: %s | %s", loc.T("report.category"), categoryLabel(it.Category, loc), it.Explanation))
		pdf.Ln(1)
	}

	pdf.Ln(3)
	heading(13, loc.T("report.payment"))
	pdf.SetFont("Arial", "", 10)
	for _, row := range paymentRows(res.Payment, loc) {
		line(17, row.label+": "+row.value)
	}

	if len(res.NextActions) > 0 {
		pdf.Ln(3)
		heading(13, loc.T("report.next_actions"))
		pdf.SetFont("Arial", "", 10)
		for _, a := range limit(res.NextActions, maxListEntries) {
			line(17, "- "+a.Title+": "+a.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf report: %w", err)
	}
	return buf.Bytes(), nil
}
