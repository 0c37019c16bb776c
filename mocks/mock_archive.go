package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payroll/internal/port"
)

// MockArchive is a mock implementation of port.Archive.
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Put(ctx context.Context, obj port.ArchiveObject) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}
