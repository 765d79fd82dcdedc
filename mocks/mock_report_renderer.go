package mocks

import (
	"github.com/stretchr/testify/mock"

	"telcheck/internal/domain"
)

// MockReportRenderer is a mock implementation of port.ReportRenderer.
type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) Render(result *domain.AnalysisResult, locale string) ([]byte, error) {
	args := m.Called(result, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportRenderer) Format() domain.ReportFormat {
	args := m.Called()
	return args.Get(0).(domain.ReportFormat)
}

func (m *MockReportRenderer) ContentType() string {
	args := m.Called()
	return args.String(0)
}
