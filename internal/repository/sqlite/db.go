// Package sqlite is the single-file storage backend, built on gorm.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"payroll/internal/config"
	"payroll/internal/domain"
)

const memoryPath = ":memory:"

// gormLogWriter routes gorm's logger through zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Debug().Str("component", "gorm").Msgf(format, args...)
}

// NewDB opens the SQLite database at cfg.SQLitePath and migrates the schema.
func NewDB(cfg *config.DBConfig) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "data/payroll.db"
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if path == memoryPath {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	}

	if err := gdb.AutoMigrate(&domain.Worker{}, &domain.SalarySnapshot{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite schema: %w", err)
	}
	log.Info().Str("path", path).Msg("sqlite database ready")
	return gdb, nil
}
