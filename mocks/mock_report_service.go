package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"telcheck/internal/domain"
	"telcheck/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Render(ctx context.Context, format domain.ReportFormat, result *domain.AnalysisResult, locale string) (*service.ReportFile, error) {
	args := m.Called(ctx, format, result, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportFile), args.Error(1)
}
