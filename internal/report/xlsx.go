package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
)

const amountFormat = `#,##0.00 "€"`

// XLSXRenderer renders a workbook with a summary and an items sheet.
type XLSXRenderer struct{}

// NewXLSXRenderer creates an XLSXRenderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Format returns domain.ReportFormatXLSX.
func (r *XLSXRenderer) Format() domain.ReportFormat { return domain.ReportFormatXLSX }

// ContentType returns the MIME type of the rendered file.
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render builds the workbook. Item amounts are numeric cells.
func (r *XLSXRenderer) Render(res *domain.AnalysisResult, locale string) ([]byte, error) {
	if res == nil {
		return nil, domain.ErrInvalidResult
	}
	loc := i18n.NewLocalizer(locale)

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := loc.T("report.summary_sheet")
	itemsSheet := loc.T("report.items_sheet")
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("creating items sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	numFmt := amountFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	row := 1
	write := func(sheet string, col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	section := func(title string) {
		row++
		write(summarySheet, 1, title)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellStyle(summarySheet, cell, cell, bold)
		row++
	}

	write(summarySheet, 1, loc.T("report.title"))
	_ = f.SetCellStyle(summarySheet, "A1", "A1", bold)
	row += 2
	for _, lv := range summaryRows(res, loc) {
		write(summarySheet, 1, lv.label)
		write(summarySheet, 2, lv.value)
		row++
	}

	section(loc.T("report.reasons"))
	for _, reason := range res.Risk.Reasons {
		write(summarySheet, 1, reason)
		row++
	}
	section(loc.T("report.warnings"))
	for _, w := range res.Warnings {
		write(summarySheet, 1, w)
		row++
	}
	section(loc.T("report.payment"))
	for _, lv := range paymentRows(res.Payment, loc) {
		write(summarySheet, 1, lv.label)
		write(summarySheet, 2, lv.value)
		row++
	}
	section(loc.T("report.next_actions"))
	for _, a := range res.NextActions {
		write(summarySheet, 1, a.Title)
		write(summarySheet, 2, a.Text)
		row++
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	_ = f.SetColWidth(summarySheet, "B", "B", 60)

	headers := []string{
		loc.T("report.description_source"),
		loc.T("report.description_target"),
		loc.T("report.amount"),
		loc.T("report.category"),
		loc.T("report.note"),
	}
	row = 1
	for i, h := range headers {
		write(itemsSheet, i+1, h)
	}
	_ = f.SetCellStyle(itemsSheet, "A1", "E1", bold)
	for _, it := range res.Items {
		row++
		write(itemsSheet, 1, it.DescriptionSource)
		write(itemsSheet, 2, it.DescriptionTarget)
		write(itemsSheet, 3, it.Amount.Value.InexactFloat64())
		write(itemsSheet, 4, categoryLabel(it.Category, loc))
		write(itemsSheet, 5, it.Explanation)
		cell, _ := excelize.CoordinatesToCellName(3, row)
		_ = f.SetCellStyle(itemsSheet, cell, cell, money)
	}
	_ = f.SetColWidth(itemsSheet, "A", "B", 40)
	_ = f.SetColWidth(itemsSheet, "C", "D", 14)
	_ = f.SetColWidth(itemsSheet, "E", "E", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("rendering xlsx report: %w", err)
	}
	return buf.Bytes(), nil
}
