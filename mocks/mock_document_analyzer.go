package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"telcheck/internal/domain"
)

// MockDocumentAnalyzer is a mock implementation of port.DocumentAnalyzer.
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) AnalyzeLocalized(ctx context.Context, doc domain.RawDocument, locale string) domain.AnalysisResult {
	args := m.Called(ctx, doc, locale)
	return args.Get(0).(domain.AnalysisResult)
}
