package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payroll/internal/domain"
)

// MockSalaryRepo is a mock implementation of port.SalaryRepository.
type MockSalaryRepo struct {
	mock.Mock
}

func (m *MockSalaryRepo) Create(ctx context.Context, snapshot *domain.SalarySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSalaryRepo) LatestSheetDate(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalaryRepo) ListBySheetDate(ctx context.Context, sheetDate int64) ([]domain.SalarySnapshot, error) {
	args := m.Called(ctx, sheetDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalarySnapshot), args.Error(1)
}
