package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"payroll/internal/domain"
	"payroll/internal/parser"
	"payroll/internal/port"
)

// ImageUpload is one image of an import request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImportService defines the roster image import contract.
type ImportService interface {
	Import(ctx context.Context, images []ImageUpload) (*ReconcileResult, error)
}

// ImportConfig bounds the extraction fan-out.
type ImportConfig struct {
	Concurrency   int
	Timeout       time.Duration
	MaxImageBytes int64
}

type importService struct {
	extractor  port.RosterExtractor
	reconciler Reconciler
	archive    port.Archive
	cfg        ImportConfig
	now        func() time.Time
}

// NewImportService creates a new ImportService implementation.
func NewImportService(extractor port.RosterExtractor, reconciler Reconciler, archive port.Archive, cfg ImportConfig) ImportService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &importService{
		extractor:  extractor,
		reconciler: reconciler,
		archive:    archive,
		cfg:        cfg,
		now:        time.Now,
	}
}

// ResolveImageType returns the MIME type of an upload, falling back to the file extension
// when the declared type is missing or generic.
func ResolveImageType(contentType, fileName string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if _, ok := domain.AllowedImageTypes[ct]; ok {
		return ct, nil
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if mime, ok := domain.AllowedImageExtensions[ext]; ok && (ct == "" || ct == "application/octet-stream") {
		return mime, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedImageType, fileName, contentType)
}

// extraction is the outcome for one image.
type extraction struct {
	candidates []domain.Candidate
	err        error
}

func (s *importService) Import(ctx context.Context, images []ImageUpload) (*ReconcileResult, error) {
	if len(images) == 0 {
		return nil, domain.ErrNoImages
	}
	for i := range images {
		ct, err := ResolveImageType(images[i].ContentType, images[i].FileName)
		if err != nil {
			return nil, err
		}
		images[i].ContentType = ct
		if s.cfg.MaxImageBytes > 0 && int64(len(images[i].Data)) > s.cfg.MaxImageBytes {
			return nil, fmt.Errorf("%w: %s", domain.ErrImageTooLarge, images[i].FileName)
		}
	}

	results := make([]extraction, len(images))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i := range images {
		g.Go(func() error {
			s.archiveImage(ctx, &images[i])
			results[i] = s.extract(ctx, &images[i])
			return nil
		})
	}
	_ = g.Wait()

	out := &ReconcileResult{Workers: []domain.Worker{}, ErrorMessages: []string{}}
	var firstErr error
	succeeded := 0
	for i := range results {
		if err := results[i].err; err != nil {
			log.Warn().Err(err).Str("file", images[i].FileName).Msg("importService.Import: extraction failed")
			out.ErrorMessages = append(out.ErrorMessages,
				fmt.Sprintf("图片识别失败, 文件: %s, 原因: %s", images[i].FileName, parser.Truncate(err.Error(), 200)))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded++

		batch := s.reconciler.Reconcile(ctx, results[i].candidates)
		out.Workers = append(out.Workers, batch.Workers...)
		out.ErrorMessages = append(out.ErrorMessages, batch.ErrorMessages...)
	}

	if succeeded == 0 {
		var rlErr *parser.RateLimitError
		if errors.As(firstErr, &rlErr) {
			return nil, fmt.Errorf("%w: %w", domain.ErrExtractionRateLimited, firstErr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, firstErr)
	}

	log.Info().
		Int("images", len(images)).
		Int("failed_images", len(images)-succeeded).
		Int("workers", len(out.Workers)).
		Int("diagnostics", len(out.ErrorMessages)).
		Msg("importService.Import: import finished")
	return out, nil
}

func (s *importService) extract(ctx context.Context, img *ImageUpload) extraction {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.extractor.Extract(ctx, port.ExtractInput{
		ImageBytes:  img.Data,
		ContentType: img.ContentType,
		FileName:    img.FileName,
	})
	if err != nil {
		return extraction{err: err}
	}
	candidates, err := parser.DecodeCandidates(raw.RawText)
	if err != nil {
		return extraction{err: err}
	}
	log.Debug().Str("file", img.FileName).Str("model", raw.ModelUsed).Int("candidates", len(candidates)).
		Msg("importService.extract: image extracted")
	return extraction{candidates: candidates}
}

func (s *importService) archiveImage(ctx context.Context, img *ImageUpload) {
	key := fmt.Sprintf("imports/%s/%s.%s", s.now().Format("2006-01-02"), uuid.New(), domain.AllowedImageTypes[img.ContentType])
	if _, err := s.archive.Put(ctx, port.ArchiveObject{Key: key, Body: img.Data, ContentType: img.ContentType}); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("importService.archiveImage: archive failed")
	}
}
