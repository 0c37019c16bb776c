package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"payroll/internal/domain"
	"payroll/internal/port"
)

const workerColumns = `id, identity, name, phone, bankcard, address, salary, created_at, updated_at`

type workerRepo struct {
	db *sqlx.DB
}

// NewWorkerRepo creates a new PostgreSQL-backed WorkerRepository.
func NewWorkerRepo(db *sqlx.DB) port.WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	if worker.ID == uuid.Nil {
		worker.ID = uuid.New()
	}
	now := time.Now().UTC()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	query := `INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		worker.ID, worker.Identity, worker.Name, worker.Phone, worker.Bankcard,
		worker.Address, worker.Salary, worker.CreatedAt, worker.UpdatedAt)
	if err != nil {
		return fmt.Errorf("workerRepo.Create: %w", err)
	}
	return nil
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.GetContext(ctx, &worker,
		"SELECT "+workerColumns+" FROM workers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("workerRepo.GetByID: %w", err)
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	err := r.db.SelectContext(ctx, &workers,
		"SELECT "+workerColumns+" FROM workers ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("workerRepo.List: %w", err)
	}
	return workers, nil
}

func (r *workerRepo) FindByIdentityOrName(ctx context.Context, identity, name string) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	err := r.db.SelectContext(ctx, &workers,
		"SELECT "+workerColumns+" FROM workers WHERE identity = $1 OR name = $2 ORDER BY created_at, id",
		identity, name)
	if err != nil {
		return nil, fmt.Errorf("workerRepo.FindByIdentityOrName: %w", err)
	}
	return workers, nil
}

func (r *workerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	worker.UpdatedAt = time.Now().UTC()
	query := `UPDATE workers SET identity = $1, name = $2, phone = $3, bankcard = $4,
		address = $5, salary = $6, updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		worker.Identity, worker.Name, worker.Phone, worker.Bankcard,
		worker.Address, worker.Salary, worker.UpdatedAt, worker.ID)
	if err != nil {
		return fmt.Errorf("workerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *workerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("workerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
