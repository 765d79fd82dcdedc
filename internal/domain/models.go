package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawDocument is the text extracted from an uploaded file. Text may be empty
// for scanned documents without a text layer.
type RawDocument struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`
}

// MonetaryAmount pairs a decimal value with its German display form ("1.234,56 €").
type MonetaryAmount struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

// LineItem is a single charge recovered from the document text.
type LineItem struct {
	DescriptionSource string         `json:"description_source"`
	DescriptionTarget string         `json:"description_target"`
	Amount            MonetaryAmount `json:"amount"`
	Category          ChargeCategory `json:"category"`
	Explanation       string         `json:"explanation"`
}

// PaymentInstructions holds bank transfer details; empty strings mean not found.
type PaymentInstructions struct {
	IBAN         string `json:"iban"`
	BIC          string `json:"bic"`
	Recipient    string `json:"recipient"`
	Reference    string `json:"reference"`
	Instructions string `json:"instructions"`
}

// RiskAssessment is the traffic-light verdict for a document.
type RiskAssessment struct {
	Status  RiskStatus `json:"status"`
	Score   int        `json:"score"`
	Reasons []string   `json:"reasons"`
}

// NextAction is a suggested follow-up for the reader of the document.
type NextAction struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// FieldStatus is the computed validation state for a single field.
type FieldStatus struct {
	Status   FieldValidationStatus `json:"status"`
	Messages []string              `json:"messages"`
}

// AnalysisResult is the structured summary of one analyzed document.
type AnalysisResult struct {
	ID         uuid.UUID `json:"analysis_id"`
	FileName   string    `json:"file_name"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	TextLength int       `json:"text_length"`
	Locale     string    `json:"locale"`

	Provider          Provider        `json:"provider"`
	DocumentType      DocumentType    `json:"document_type"`
	InvoiceNumber     string          `json:"invoice_number"`
	InvoiceDate       string          `json:"invoice_date"`
	BillingPeriod     string          `json:"billing_period"`
	TotalAmount       *MonetaryAmount `json:"total_amount"`
	OutstandingAmount *MonetaryAmount `json:"outstanding_amount"`
	PaymentDue        string          `json:"payment_due"`
	CancelableFrom    string          `json:"cancelable_from"`
	NoticePeriod      string          `json:"notice_period"`

	Payment     PaymentInstructions    `json:"payment"`
	Items       []LineItem             `json:"items"`
	Risk        RiskAssessment         `json:"risk"`
	Warnings    []string               `json:"warnings"`
	NextActions []NextAction           `json:"next_actions"`
	FieldStatus map[string]FieldStatus `json:"field_status,omitempty"`
}

// DisplayAmount returns the display string of a possibly missing amount.
func DisplayAmount(a *MonetaryAmount) string {
	if a == nil {
		return ""
	}
	return a.Display
}
