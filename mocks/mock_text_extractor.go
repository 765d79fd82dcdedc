package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"telcheck/internal/domain"
	"telcheck/internal/port"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, input port.ExtractInput) (domain.RawDocument, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.RawDocument), args.Error(1)
}
