package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"payroll/internal/domain"
	"payroll/internal/payroll"
	"payroll/internal/port"
)

// SheetWorkerInput is one worker line of a sheet request. Salary is the total paid for the period.
type SheetWorkerInput struct {
	ID       uuid.UUID `json:"id"`
	Identity string    `json:"identity"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Bankcard string    `json:"bankcard"`
	Address  string    `json:"address"`
	Salary   int       `json:"salary"`
}

// GenerateSheetInput is the DTO for generating a payroll sheet.
type GenerateSheetInput struct {
	SalaryDate string             `json:"salary_date"`
	Workers    []SheetWorkerInput `json:"workers"`
}

// GeneratedSheet is a rendered sheet ready for download.
type GeneratedSheet struct {
	SheetDate   int64
	SalaryDate  string
	FileName    string
	ContentType string
	Content     []byte
	Total       int
}

// LatestSheet is the snapshot set of the most recent sheet.
type LatestSheet struct {
	SheetDate  int64                   `json:"sheet_date"`
	SalaryDate string                  `json:"salary_date"`
	Rows       []domain.SalarySnapshot `json:"rows"`
}

// SheetService defines the payroll sheet contract.
type SheetService interface {
	Generate(ctx context.Context, input GenerateSheetInput) (*GeneratedSheet, error)
	// Latest returns the rows of the newest sheet; a nil result means no sheet exists yet.
	Latest(ctx context.Context) (*LatestSheet, error)
}

// SheetServiceConfig holds the presentation settings of generated sheets.
type SheetServiceConfig struct {
	Issuer string
}

type sheetService struct {
	workers  port.WorkerRepository
	salaries port.SalaryRepository
	renderer port.SheetRenderer
	archive  port.Archive
	cfg      SheetServiceConfig
	rnd      payroll.Random
	now      func() time.Time
}

// NewSheetService creates a new SheetService implementation.
func NewSheetService(
	workers port.WorkerRepository,
	salaries port.SalaryRepository,
	renderer port.SheetRenderer,
	archive port.Archive,
	cfg SheetServiceConfig,
) SheetService {
	return NewSheetServiceWithRandom(workers, salaries, renderer, archive, cfg, payroll.DefaultRandom, time.Now)
}

// NewSheetServiceWithRandom creates a SheetService with an explicit random source and clock.
func NewSheetServiceWithRandom(
	workers port.WorkerRepository,
	salaries port.SalaryRepository,
	renderer port.SheetRenderer,
	archive port.Archive,
	cfg SheetServiceConfig,
	rnd payroll.Random,
	now func() time.Time,
) SheetService {
	return &sheetService{
		workers:  workers,
		salaries: salaries,
		renderer: renderer,
		archive:  archive,
		cfg:      cfg,
		rnd:      rnd,
		now:      now,
	}
}

func (s *sheetService) Generate(ctx context.Context, input GenerateSheetInput) (*GeneratedSheet, error) {
	if len(input.Workers) == 0 {
		return nil, domain.ErrNoSheetWorkers
	}

	workers := make([]domain.Worker, len(input.Workers))
	for i, in := range input.Workers {
		if in.Salary < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSalary, in.Name)
		}
		workers[i] = domain.Worker{
			ID:       in.ID,
			Identity: in.Identity,
			Name:     in.Name,
			Phone:    in.Phone,
			Bankcard: in.Bankcard,
			Address:  in.Address,
			Salary:   in.Salary,
		}
	}

	header := payroll.Header{
		Issuer:     s.cfg.Issuer,
		SalaryDate: input.SalaryDate,
		SheetDate:  s.now().UnixMilli(),
	}
	sheet, lines := payroll.Synthesize(header, workers, s.rnd)

	content, err := s.renderer.Render(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheetService.Generate: %w", err)
	}

	for i := range lines {
		if err := s.refreshWorker(ctx, &workers[i]); err != nil {
			return nil, err
		}
		snap := lines[i].Snapshot
		if err := s.salaries.Create(ctx, &snap); err != nil {
			return nil, fmt.Errorf("sheetService.Generate snapshot: %w", err)
		}
	}

	fileName := fmt.Sprintf("%s_%d%s", domain.SheetTitle, header.SheetDate, s.renderer.Extension())
	s.archiveSheet(ctx, header.SheetDate, content)

	log.Info().
		Int64("sheet_date", header.SheetDate).
		Str("salary_date", header.SalaryDate).
		Int("rows", len(lines)).
		Int("total", sheet.Total).
		Msg("sheetService.Generate: sheet generated")

	return &GeneratedSheet{
		SheetDate:   header.SheetDate,
		SalaryDate:  header.SalaryDate,
		FileName:    fileName,
		ContentType: s.renderer.ContentType(),
		Content:     content,
		Total:       sheet.Total,
	}, nil
}

// refreshWorker writes the sheet's copy of a worker back to the store. Workers without a
// known id are skipped.
func (s *sheetService) refreshWorker(ctx context.Context, w *domain.Worker) error {
	if w.ID == uuid.Nil {
		log.Warn().Str("name", w.Name).Msg("sheetService.Generate: worker without id, record not updated")
		return nil
	}
	err := s.workers.Update(ctx, w)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("worker_id", w.ID.String()).Msg("sheetService.Generate: unknown worker id, record not updated")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sheetService.Generate update worker: %w", err)
	}
	return nil
}

func (s *sheetService) archiveSheet(ctx context.Context, sheetDate int64, content []byte) {
	key := fmt.Sprintf("sheets/%d%s", sheetDate, s.renderer.Extension())
	location, err := s.archive.Put(ctx, port.ArchiveObject{
		Key:         key,
		Body:        content,
		ContentType: s.renderer.ContentType(),
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sheetService.archiveSheet: archive failed")
		return
	}
	if location != "" {
		log.Debug().Str("location", location).Msg("sheetService.archiveSheet: sheet archived")
	}
}

func (s *sheetService) Latest(ctx context.Context) (*LatestSheet, error) {
	sheetDate, err := s.salaries.LatestSheetDate(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sheetService.Latest: %w", err)
	}

	rows, err := s.salaries.ListBySheetDate(ctx, sheetDate)
	if err != nil {
		return nil, fmt.Errorf("sheetService.Latest: %w", err)
	}

	latest := &LatestSheet{SheetDate: sheetDate, Rows: rows}
	if len(rows) > 0 {
		latest.SalaryDate = rows[0].SalaryDate
	}
	return latest, nil
}
