package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payroll/internal/domain"
	"payroll/internal/port"
)

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo creates a new SQLite-backed WorkerRepository.
func NewWorkerRepo(db *gorm.DB) port.WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	if worker.ID == uuid.Nil {
		worker.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(worker).Error; err != nil {
		return fmt.Errorf("workerRepo.Create: %w", err)
	}
	return nil
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("workerRepo.GetByID: %w", err)
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&workers).Error; err != nil {
		return nil, fmt.Errorf("workerRepo.List: %w", err)
	}
	return workers, nil
}

func (r *workerRepo) FindByIdentityOrName(ctx context.Context, identity, name string) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	err := r.db.WithContext(ctx).
		Where("identity = ? OR name = ?", identity, name).
		Order("created_at, id").
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("workerRepo.FindByIdentityOrName: %w", err)
	}
	return workers, nil
}

func (r *workerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	result := r.db.WithContext(ctx).Model(&domain.Worker{}).
		Where("id = ?", worker.ID).
		Updates(map[string]interface{}{
			"identity": worker.Identity,
			"name":     worker.Name,
			"phone":    worker.Phone,
			"bankcard": worker.Bankcard,
			"address":  worker.Address,
			"salary":   worker.Salary,
		})
	if result.Error != nil {
		return fmt.Errorf("workerRepo.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *workerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Worker{})
	if result.Error != nil {
		return fmt.Errorf("workerRepo.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
