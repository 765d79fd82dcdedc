// Package report renders analysis results as PDF and XLSX downloads.
package report

import (
	"strconv"

	"telcheck/internal/domain"
	"telcheck/internal/i18n"
)

const (
	maxReportItems = 25
	maxListEntries = 10
)

type labeledValue struct {
	label string
	value string
}

// summaryRows returns the document fields in report order, with a
// placeholder for values that were not found.
func summaryRows(res *domain.AnalysisResult, loc *i18n.Localizer) []labeledValue {
	none := loc.T("report.none")
	orNone := func(s string) string {
		if s == "" {
			return none
		}
		return s
	}
	return []labeledValue{
		{loc.T("report.file"), orNone(res.FileName)},
		{loc.T("report.provider"), string(res.Provider)},
		{loc.T("report.document_type"), string(res.DocumentType)},
		{loc.T("report.invoice_number"), orNone(res.InvoiceNumber)},
		{loc.T("report.invoice_date"), orNone(res.InvoiceDate)},
		{loc.T("report.billing_period"), orNone(res.BillingPeriod)},
		{loc.T("report.total_amount"), orNone(domain.DisplayAmount(res.TotalAmount))},
		{loc.T("report.outstanding_amount"), orNone(domain.DisplayAmount(res.OutstandingAmount))},
		{loc.T("report.payment_due"), orNone(res.PaymentDue)},
		{loc.T("report.cancelable_from"), orNone(res.CancelableFrom)},
		{loc.T("report.notice_period"), orNone(res.NoticePeriod)},
		{loc.T("report.traffic_light"), statusLabel(res.Risk.Status, loc)},
		{loc.T("report.score"), strconv.Itoa(res.Risk.Score) + "/100"},
	}
}

func paymentRows(p domain.PaymentInstructions, loc *i18n.Localizer) []labeledValue {
	return []labeledValue{
		{loc.T("report.recipient"), p.Recipient},
		{loc.T("report.iban"), p.IBAN},
		{loc.T("report.bic"), p.BIC},
		{loc.T("report.reference"), p.Reference},
		{loc.T("report.instructions"), p.Instructions},
	}
}

func statusLabel(s domain.RiskStatus, loc *i18n.Localizer) string {
	if s == "" {
		return loc.T("report.none")
	}
	return loc.T("status." + string(s))
}

func categoryLabel(c domain.ChargeCategory, loc *i18n.Localizer) string {
	return loc.T("category." + string(c))
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
