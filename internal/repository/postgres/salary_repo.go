package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"payroll/internal/domain"
	"payroll/internal/port"
)

const salaryColumns = `id, sheet_date, row_index, salary_date, identity, name, phone, bankcard, address,
	salary, daily_wage, attendance_days, job`

type salaryRepo struct {
	db *sqlx.DB
}

// NewSalaryRepo creates a new PostgreSQL-backed SalaryRepository.
func NewSalaryRepo(db *sqlx.DB) port.SalaryRepository {
	return &salaryRepo{db: db}
}

func (r *salaryRepo) Create(ctx context.Context, s *domain.SalarySnapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `INSERT INTO salaries (` + salaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SheetDate, s.RowIndex, s.SalaryDate, s.Identity, s.Name, s.Phone, s.Bankcard, s.Address,
		s.Salary, s.DailyWage, s.AttendanceDays, s.Job)
	if err != nil {
		return fmt.Errorf("salaryRepo.Create: %w", err)
	}
	return nil
}

func (r *salaryRepo) LatestSheetDate(ctx context.Context) (int64, error) {
	var latest sql.NullInt64
	if err := r.db.GetContext(ctx, &latest, "SELECT MAX(sheet_date) FROM salaries"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("salaryRepo.LatestSheetDate: %w", err)
	}
	if !latest.Valid {
		return 0, domain.ErrNotFound
	}
	return latest.Int64, nil
}

func (r *salaryRepo) ListBySheetDate(ctx context.Context, sheetDate int64) ([]domain.SalarySnapshot, error) {
	snapshots := []domain.SalarySnapshot{}
	err := r.db.SelectContext(ctx, &snapshots,
		"SELECT "+salaryColumns+" FROM salaries WHERE sheet_date = $1 ORDER BY row_index, id", sheetDate)
	if err != nil {
		return nil, fmt.Errorf("salaryRepo.ListBySheetDate: %w", err)
	}
	return snapshots, nil
}
