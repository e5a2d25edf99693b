package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordbooks/lineflow/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRunSummary(ctx context.Context, toAddress string, summary port.RunSummary) error {
	args := m.Called(ctx, toAddress, summary)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}
