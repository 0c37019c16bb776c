package mocks

import (
	"github.com/stretchr/testify/mock"

	"payroll/internal/domain"
)

// MockSheetRenderer is a mock implementation of port.SheetRenderer.
type MockSheetRenderer struct {
	mock.Mock
}

func (m *MockSheetRenderer) Render(sheet *domain.Sheet) ([]byte, error) {
	args := m.Called(sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSheetRenderer) ContentType() string {
	return m.Called().String(0)
}

func (m *MockSheetRenderer) Extension() string {
	return m.Called().String(0)
}
