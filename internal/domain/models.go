package domain

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a payroll worker record. Job is derived from Salary on every read and is never persisted.
type Worker struct {
	ID        uuid.UUID `db:"id" json:"id" gorm:"type:text;primaryKey"`
	Identity  string    `db:"identity" json:"identity" gorm:"index"`
	Name      string    `db:"name" json:"name" gorm:"index"`
	Phone     string    `db:"phone" json:"phone"`
	Bankcard  string    `db:"bankcard" json:"bankcard"`
	Address   string    `db:"address" json:"address"`
	Salary    int       `db:"salary" json:"salary"`
	Job       JobTier   `db:"-" json:"job" gorm:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TableName binds Worker to the workers table for gorm.
func (Worker) TableName() string { return "workers" }

// SalarySnapshot is an append-only copy of one worker's pay on one generated sheet.
// All rows of one sheet share SheetDate (unix milliseconds).
type SalarySnapshot struct {
	ID             uuid.UUID `db:"id" json:"id" gorm:"type:text;primaryKey"`
	SheetDate      int64     `db:"sheet_date" json:"sheet_date" gorm:"index"`
	RowIndex       int       `db:"row_index" json:"row_index"`
	SalaryDate     string    `db:"salary_date" json:"salary_date"`
	Identity       string    `db:"identity" json:"identity"`
	Name           string    `db:"name" json:"name"`
	Phone          string    `db:"phone" json:"phone"`
	Bankcard       string    `db:"bankcard" json:"bankcard"`
	Address        string    `db:"address" json:"address"`
	Salary         int       `db:"salary" json:"salary"`
	DailyWage      int       `db:"daily_wage" json:"daily_wage"`
	AttendanceDays float64   `db:"attendance_days" json:"attendance_days"`
	Job            JobTier   `db:"job" json:"job"`
}

// TableName binds SalarySnapshot to the salaries table for gorm.
func (SalarySnapshot) TableName() string { return "salaries" }

// Candidate is an unvalidated worker record extracted from an image.
// Empty strings and a zero Salary mean the field was not recognised.
type Candidate struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Bankcard string `json:"bankcard"`
	Address  string `json:"address"`
	Salary   int    `json:"salary"`
}

// MissingFields lists the required fields the candidate lacks.
func (c *Candidate) MissingFields() []string {
	var missing []string
	if c.Identity == "" {
		missing = append(missing, "identity")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Address == "" {
		missing = append(missing, "address")
	}
	if c.Bankcard == "" {
		missing = append(missing, "bankcard")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// IsComplete reports whether every required field is present. Salary is optional.
func (c *Candidate) IsComplete() bool {
	return len(c.MissingFields()) == 0
}
