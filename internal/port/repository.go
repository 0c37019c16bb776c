package port

import (
	"context"

	"github.com/google/uuid"

	"payroll/internal/domain"
)

// WorkerRepository defines the contract for worker persistence.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	// FindByIdentityOrName returns every worker whose identity OR name matches, earliest created first.
	FindByIdentityOrName(ctx context.Context, identity, name string) ([]domain.Worker, error)
	Update(ctx context.Context, worker *domain.Worker) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalaryRepository defines the contract for the append-only salary snapshot table.
type SalaryRepository interface {
	Create(ctx context.Context, snapshot *domain.SalarySnapshot) error
	// LatestSheetDate returns the newest sheet timestamp, or domain.ErrNotFound when no sheet exists.
	LatestSheetDate(ctx context.Context) (int64, error)
	ListBySheetDate(ctx context.Context, sheetDate int64) ([]domain.SalarySnapshot, error)
}

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}
