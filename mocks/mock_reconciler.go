package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payroll/internal/domain"
	"payroll/internal/service"
)

// MockReconciler is a mock implementation of service.Reconciler.
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, candidates []domain.Candidate) *service.ReconcileResult {
	args := m.Called(ctx, candidates)
	return args.Get(0).(*service.ReconcileResult)
}
