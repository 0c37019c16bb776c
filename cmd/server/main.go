package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"payroll/internal/config"
	"payroll/internal/handler"
	"payroll/internal/parser"
	"payroll/internal/parser/claude"
	"payroll/internal/parser/gemini"
	"payroll/internal/parser/openai"
	"payroll/internal/port"
	"payroll/internal/repository/postgres"
	"payroll/internal/repository/sqlite"
	"payroll/internal/router"
	"payroll/internal/service"
	"payroll/internal/storage/noop"
	s3storage "payroll/internal/storage/s3"
	"payroll/internal/xlsx"
)

const shutdownTimeout = 15 * time.Second

// @title Payroll API
// @version 1.0
// @description Worker roster import and payroll sheet generation.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(&cfg.Log, cfg.Server.Environment)

	stores, err := openStores(&cfg.DB)
	if err != nil {
		return err
	}
	defer stores.close()

	// Initialize extraction providers
	parser.RegisterProvider("openai", openai.Factory)
	parser.RegisterProvider("claude", claude.Factory)
	parser.RegisterProvider("gemini", gemini.Factory)
	extractor, err := parser.Build(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	archive, err := openArchive(rootCtx, &cfg.Archive)
	if err != nil {
		return err
	}

	// Initialize services
	reconciler := service.NewReconciler(stores.workers)
	workerSvc := service.NewWorkerService(stores.workers)
	importSvc := service.NewImportService(extractor, reconciler, archive, service.ImportConfig{
		Concurrency:   cfg.Parser.Concurrency,
		Timeout:       cfg.Parser.PrimaryConfig().Timeout(),
		MaxImageBytes: cfg.Server.MaxUploadMB << 20,
	})
	sheetSvc := service.NewSheetService(stores.workers, stores.salaries, xlsx.NewRenderer(), archive,
		service.SheetServiceConfig{Issuer: cfg.Sheet.Issuer})

	// Initialize handlers
	workerH := handler.NewWorkerHandler(workerSvc, importSvc, cfg.Server.MaxUploadMB)
	sheetH := handler.NewSheetHandler(sheetSvc)
	healthH := handler.NewHealthHandler(stores.pinger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.Setup(workerH, sheetH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	group, gctx := errgroup.WithContext(rootCtx)
	group.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("db_driver", cfg.DB.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})

	if err := group.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

type stores struct {
	workers  port.WorkerRepository
	salaries port.SalaryRepository
	pinger   port.Pinger
	close    func()
}

func openStores(cfg *config.DBConfig) (*stores, error) {
	switch cfg.Driver {
	case "postgres", "":
		if err := postgres.Migrate(cfg.DSN()); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &stores{
			workers:  postgres.NewWorkerRepo(db),
			salaries: postgres.NewSalaryRepo(db),
			pinger:   db,
			close:    func() { _ = db.Close() },
		}, nil
	case "sqlite":
		db, err := sqlite.NewDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
		}
		return &stores{
			workers:  sqlite.NewWorkerRepo(db),
			salaries: sqlite.NewSalaryRepo(db),
			pinger:   sqlDB,
			close:    func() { _ = sqlDB.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}

func openArchive(ctx context.Context, cfg *config.ArchiveConfig) (port.Archive, error) {
	if !cfg.Enabled {
		log.Info().Msg("archive disabled")
		return noop.NewArchive(), nil
	}
	archive, err := s3storage.NewArchive(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archive: %w", err)
	}
	log.Info().Str("bucket", cfg.Bucket).Msg("archive enabled")
	return archive, nil
}

func setupLogger(cfg *config.LogConfig, environment string) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("env", environment).Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
