package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrNoImages              = errors.New("no image provided")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrImageTooLarge         = errors.New("image exceeds maximum allowed size")
	ErrNoWorkerIDs           = errors.New("no worker ids provided")
	ErrNoSheetWorkers        = errors.New("no worker data provided for sheet generation")
	ErrInvalidSalary         = errors.New("salary must not be negative")
	ErrExtractionFailed      = errors.New("roster extraction failed")
	ErrExtractionMalformed   = errors.New("roster extraction returned malformed content")
	ErrExtractionRateLimited = errors.New("roster extraction rate limited")
	ErrSheetRenderFailed     = errors.New("sheet rendering failed")
)
