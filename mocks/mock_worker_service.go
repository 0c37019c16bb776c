package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"payroll/internal/domain"
	"payroll/internal/service"
)

// MockWorkerService is a mock implementation of service.WorkerService.
type MockWorkerService struct {
	mock.Mock
}

func (m *MockWorkerService) List(ctx context.Context) ([]domain.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerService) Update(ctx context.Context, id uuid.UUID, input service.UpdateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}
