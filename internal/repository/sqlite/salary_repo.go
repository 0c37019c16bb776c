package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payroll/internal/domain"
	"payroll/internal/port"
)

type salaryRepo struct {
	db *gorm.DB
}

// NewSalaryRepo creates a new SQLite-backed SalaryRepository.
func NewSalaryRepo(db *gorm.DB) port.SalaryRepository {
	return &salaryRepo{db: db}
}

func (r *salaryRepo) Create(ctx context.Context, s *domain.SalarySnapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("salaryRepo.Create: %w", err)
	}
	return nil
}

func (r *salaryRepo) LatestSheetDate(ctx context.Context) (int64, error) {
	var latest sql.NullInt64
	row := r.db.WithContext(ctx).Model(&domain.SalarySnapshot{}).Select("MAX(sheet_date)").Row()
	if err := row.Scan(&latest); err != nil {
		return 0, fmt.Errorf("salaryRepo.LatestSheetDate: %w", err)
	}
	if !latest.Valid {
		return 0, domain.ErrNotFound
	}
	return latest.Int64, nil
}

func (r *salaryRepo) ListBySheetDate(ctx context.Context, sheetDate int64) ([]domain.SalarySnapshot, error) {
	snapshots := []domain.SalarySnapshot{}
	err := r.db.WithContext(ctx).
		Where("sheet_date = ?", sheetDate).
		Order("row_index, id").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("salaryRepo.ListBySheetDate: %w", err)
	}
	return snapshots, nil
}
