package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"telcheck/internal/analyzer"
	"telcheck/internal/config"
	"telcheck/internal/domain"
	"telcheck/internal/extract"
	"telcheck/internal/port"
	"telcheck/internal/rules"
	"telcheck/internal/service"
	"telcheck/mocks"
)

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{MaxFileSizeMB: 1}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

func TestAnalysisService_AnalyzeUpload_PDF(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	an := new(mocks.MockDocumentAnalyzer)
	cfg := testUploadConfig()
	svc := service.NewAnalysisService(extractor, an, &cfg, nil)

	file, header := createMultipartFile("rechnung.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	doc := domain.RawDocument{Text: "Rechnungsnummer 12345678", FileName: "rechnung.pdf"}
	extractor.On("Extract", mock.Anything, port.ExtractInput{
		Data:        pdfContent(),
		ContentType: "application/pdf",
		FileName:    "rechnung.pdf",
	}).Return(doc, nil)
	an.On("AnalyzeLocalized", mock.Anything, doc, "de").
		Return(domain.AnalysisResult{InvoiceNumber: "12345678", DocumentType: domain.DocumentTypeInvoice})

	res, err := svc.AnalyzeUpload(context.Background(), service.UploadInput{File: file, Header: header, Locale: "de"})

	require.NoError(t, err)
	assert.Equal(t, "12345678", res.InvoiceNumber)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.False(t, res.AnalyzedAt.IsZero())
	extractor.AssertExpectations(t)
	an.AssertExpectations(t)
}

func TestAnalysisService_AnalyzeUpload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  error
	}{
		{"unsupported extension", "scan.png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, domain.ErrUnsupportedFileType},
		{"pdf extension with text content", "rechnung.pdf", []byte("Rechnungsnummer 1"), domain.ErrUnsupportedFileType},
		{"txt extension with pdf content", "rechnung.txt", pdfContent(), domain.ErrUnsupportedFileType},
		{"empty file", "rechnung.txt", []byte{}, domain.ErrEmptyUpload},
		{"too large", "rechnung.txt", bytes.Repeat([]byte("a"), 1<<20+1), domain.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := new(mocks.MockTextExtractor)
			an := new(mocks.MockDocumentAnalyzer)
			cfg := testUploadConfig()
			svc := service.NewAnalysisService(extractor, an, &cfg, nil)

			file, header := createMultipartFile(tt.filename, tt.content, "application/octet-stream")
			defer file.Close()

			res, err := svc.AnalyzeUpload(context.Background(), service.UploadInput{File: file, Header: header})

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
			an.AssertNotCalled(t, "AnalyzeLocalized", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAnalysisService_AnalyzeUpload_MissingFile(t *testing.T) {
	cfg := testUploadConfig()
	svc := service.NewAnalysisService(new(mocks.MockTextExtractor), new(mocks.MockDocumentAnalyzer), &cfg, nil)

	_, err := svc.AnalyzeUpload(context.Background(), service.UploadInput{})
	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestAnalysisService_AnalyzeUpload_ExtractionError(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	an := new(mocks.MockDocumentAnalyzer)
	cfg := testUploadConfig()
	svc := service.NewAnalysisService(extractor, an, &cfg, nil)

	file, header := createMultipartFile("rechnung.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	extractor.On("Extract", mock.Anything, mock.AnythingOfType("port.ExtractInput")).
		Return(domain.RawDocument{}, errors.Join(domain.ErrTextExtraction, errors.New("corrupt xref")))

	_, err := svc.AnalyzeUpload(context.Background(), service.UploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrTextExtraction)
	an.AssertNotCalled(t, "AnalyzeLocalized", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisService_AnalyzeText(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	an := new(mocks.MockDocumentAnalyzer)
	cfg := testUploadConfig()
	svc := service.NewAnalysisService(extractor, an, &cfg, nil)

	doc := domain.RawDocument{Text: "Mahnung", FileName: "x.txt"}
	an.On("AnalyzeLocalized", mock.Anything, doc, "en").
		Return(domain.AnalysisResult{DocumentType: domain.DocumentTypePaymentReminder})

	res, err := svc.AnalyzeText(context.Background(), service.TextInput{Text: "Mahnung", FileName: "x.txt", Locale: "en"})

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypePaymentReminder, res.DocumentType)
	assert.NotEqual(t, uuid.Nil, res.ID)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

// Real extractor and analyzer end to end over a text upload.
func TestAnalysisService_TextUploadEndToEnd(t *testing.T) {
	rs, err := rules.Default()
	require.NoError(t, err)
	cfg := testUploadConfig()
	svc := service.NewAnalysisService(extract.New(nil), analyzer.New(rs, nil, analyzer.Options{}), &cfg, nil)

	content := []byte("Telekom Deutschland GmbH\nRechnungsnummer 12345678\nRechnungsbetrag 29,36 €\n")
	file, header := createMultipartFile("rechnung.txt", content, "text/plain")
	defer file.Close()

	res, err := svc.AnalyzeUpload(context.Background(), service.UploadInput{File: file, Header: header, Locale: "en"})

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderTelekom, res.Provider)
	assert.Equal(t, "12345678", res.InvoiceNumber)
	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "29,36 €", res.TotalAmount.Display)
	assert.Equal(t, "rechnung.txt", res.FileName)
	assert.Equal(t, domain.RiskYellow, res.Risk.Status)
}
