package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mdocr/internal/domain"
	"mdocr/internal/service"
)

// MockConversionService is a mock implementation of service.ConversionService.
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, input service.ConversionInput) (*domain.ConversionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) ConvertFile(ctx context.Context, path string, input service.ConversionInput) (*domain.ConversionResult, error) {
	args := m.Called(ctx, path, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) CleanupEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockConversionService) ArchiveEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}
