package domain

// FileType represents the file types accepted for analysis.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeTXT: "text/plain",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"text/plain":      FileTypeTXT,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeTXT,
}

// Provider identifies the telecom company that issued a document.
type Provider string

const (
	ProviderTelekom  Provider = "Telekom"
	ProviderVodafone Provider = "Vodafone"
	ProviderO2       Provider = "o2"
	ProviderCongstar Provider = "congstar"
	ProviderUnknown  Provider = "Unknown"
)

// Valid reports whether p is one of the known provider values.
func (p Provider) Valid() bool {
	switch p {
	case ProviderTelekom, ProviderVodafone, ProviderO2, ProviderCongstar, ProviderUnknown:
		return true
	}
	return false
}

// DocumentType classifies an analyzed document.
type DocumentType string

const (
	DocumentTypeInvoice         DocumentType = "invoice"
	DocumentTypePaymentReminder DocumentType = "payment_reminder"
	DocumentTypeUnknown         DocumentType = "unknown"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypePaymentReminder, DocumentTypeUnknown:
		return true
	}
	return false
}

// ChargeCategory classifies a single line item.
type ChargeCategory string

const (
	CategoryMonthly ChargeCategory = "monthly"
	CategoryOneTime ChargeCategory = "one_time"
	CategoryUsage   ChargeCategory = "usage"
	CategoryTax     ChargeCategory = "tax"
	CategoryOther   ChargeCategory = "other"
)

// AllCategories lists every charge category in evaluation order.
var AllCategories = []ChargeCategory{
	CategoryMonthly,
	CategoryOneTime,
	CategoryUsage,
	CategoryTax,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c ChargeCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RiskStatus is the traffic light shown for an analyzed document.
type RiskStatus string

const (
	RiskGreen  RiskStatus = "green"
	RiskYellow RiskStatus = "yellow"
	RiskRed    RiskStatus = "red"
)

// Severity orders statuses; a higher value is worse.
func (s RiskStatus) Severity() int {
	switch s {
	case RiskGreen:
		return 0
	case RiskYellow:
		return 1
	case RiskRed:
		return 2
	default:
		return -1
	}
}

// Worse returns whichever of s and other is more severe.
func (s RiskStatus) Worse(other RiskStatus) RiskStatus {
	if other.Severity() > s.Severity() {
		return other
	}
	return s
}

// ValidationRuleType categorizes validation rules.
type ValidationRuleType string

const (
	ValidationRuleRequired ValidationRuleType = "required"
	ValidationRuleRegex    ValidationRuleType = "regex"
	ValidationRuleChecksum ValidationRuleType = "checksum"
	ValidationRuleLogical  ValidationRuleType = "logical"
)

// ValidationSeverity indicates how serious a validation failure is.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// FieldValidationStatus is the per-field state shown next to extracted values.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
	FieldStatusInvalid FieldValidationStatus = "invalid"
)

// ReportFormat is an export format for analysis results.
type ReportFormat string

const (
	ReportFormatPDF  ReportFormat = "pdf"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatCSV  ReportFormat = "csv"
)
