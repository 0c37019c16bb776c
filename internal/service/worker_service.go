package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"payroll/internal/domain"
	"payroll/internal/port"
)

// UpdateWorkerInput is the DTO for patching a worker. Nil fields are left unchanged.
type UpdateWorkerInput struct {
	Identity *string `json:"identity"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Bankcard *string `json:"bankcard"`
	Address  *string `json:"address"`
	Salary   *int    `json:"salary"`
}

// DeleteWorkersInput is the DTO for bulk deletion.
type DeleteWorkersInput struct {
	IDs []uuid.UUID `json:"ids"`
}

// WorkerService defines the worker management contract.
type WorkerService interface {
	List(ctx context.Context) ([]domain.Worker, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateWorkerInput) (*domain.Worker, error)
	// DeleteMany removes the given workers and returns how many existed. Unknown ids are skipped.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
}

type workerService struct {
	repo port.WorkerRepository
}

// NewWorkerService creates a new WorkerService implementation.
func NewWorkerService(repo port.WorkerRepository) WorkerService {
	return &workerService{repo: repo}
}

func (s *workerService) List(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.ClassifyWorkers(workers)
	return workers, nil
}

func (s *workerService) Update(ctx context.Context, id uuid.UUID, input UpdateWorkerInput) (*domain.Worker, error) {
	if input.Salary != nil && *input.Salary < 0 {
		return nil, domain.ErrInvalidSalary
	}

	worker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Run the patched fields through the same folding imported candidates get.
	c := domain.Candidate{
		Identity: worker.Identity,
		Name:     worker.Name,
		Phone:    worker.Phone,
		Bankcard: worker.Bankcard,
		Address:  worker.Address,
	}
	if input.Identity != nil {
		c.Identity = *input.Identity
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.Bankcard != nil {
		c.Bankcard = *input.Bankcard
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	c.Normalize()

	worker.Identity = c.Identity
	worker.Name = c.Name
	worker.Phone = c.Phone
	worker.Bankcard = c.Bankcard
	worker.Address = c.Address
	if input.Salary != nil {
		worker.Salary = *input.Salary
	}

	if err := s.repo.Update(ctx, worker); err != nil {
		return nil, err
	}
	updated := worker.WithJob()
	return &updated, nil
}

func (s *workerService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, domain.ErrNoWorkerIDs
	}

	deleted := 0
	for _, id := range ids {
		err := s.repo.Delete(ctx, id)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, domain.ErrNotFound):
			log.Debug().Str("worker_id", id.String()).Msg("workerService.DeleteMany: worker already gone")
		default:
			return deleted, fmt.Errorf("workerService.DeleteMany: %w", err)
		}
	}
	return deleted, nil
}
