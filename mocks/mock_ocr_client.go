package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mdocr/internal/domain"
	"mdocr/internal/port"
)

// MockOCRClient is a mock implementation of port.OCRClient.
type MockOCRClient struct {
	mock.Mock
}

func (m *MockOCRClient) Process(ctx context.Context, input port.OCRInput) ([]domain.Page, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}
