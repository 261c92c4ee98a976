package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mdocr/internal/port"
)

// MockArchiveStore is a mock implementation of port.ArchiveStore.
type MockArchiveStore struct {
	mock.Mock
}

func (m *MockArchiveStore) Archive(ctx context.Context, input port.ArchiveInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveStore) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
