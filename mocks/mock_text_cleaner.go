package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextCleaner is a mock implementation of port.TextCleaner.
type MockTextCleaner struct {
	mock.Mock
}

func (m *MockTextCleaner) Clean(ctx context.Context, markdown string) (string, error) {
	args := m.Called(ctx, markdown)
	return args.String(0), args.Error(1)
}

func (m *MockTextCleaner) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
