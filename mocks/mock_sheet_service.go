package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payroll/internal/service"
)

// MockSheetService is a mock implementation of service.SheetService.
type MockSheetService struct {
	mock.Mock
}

func (m *MockSheetService) Generate(ctx context.Context, input service.GenerateSheetInput) (*service.GeneratedSheet, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedSheet), args.Error(1)
}

func (m *MockSheetService) Latest(ctx context.Context) (*service.LatestSheet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LatestSheet), args.Error(1)
}
