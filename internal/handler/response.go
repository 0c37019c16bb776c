package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"payroll/internal/domain"
	"payroll/internal/parser"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrNoImages):
		return http.StatusBadRequest, "NO_IMAGES", "at least one image is required"
	case errors.Is(err, domain.ErrUnsupportedImageType):
		return http.StatusBadRequest, "UNSUPPORTED_IMAGE_TYPE", "unsupported image type; allowed: jpg, png, webp, gif"
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image exceeds maximum allowed size"
	case errors.Is(err, domain.ErrNoWorkerIDs):
		return http.StatusBadRequest, "NO_WORKER_IDS", "at least one worker id is required"
	case errors.Is(err, domain.ErrNoSheetWorkers):
		return http.StatusBadRequest, "NO_SHEET_WORKERS", "at least one worker is required to generate a sheet"
	case errors.Is(err, domain.ErrInvalidSalary):
		return http.StatusBadRequest, "INVALID_SALARY", "salary must not be negative"
	case errors.Is(err, domain.ErrExtractionRateLimited):
		return http.StatusTooManyRequests, "EXTRACTION_RATE_LIMITED", "extraction provider is rate limited; retry later"
	case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrExtractionMalformed):
		return http.StatusBadRequest, "EXTRACTION_FAILED", "no image could be recognized"
	case errors.Is(err, domain.ErrSheetRenderFailed):
		return http.StatusInternalServerError, "SHEET_RENDER_FAILED", "payroll sheet could not be rendered"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	switch {
	case status >= 500:
		log.Error().Err(err).Interface("request_id", requestID).Msg("internal error")
	case status == http.StatusTooManyRequests:
		var rle *parser.RateLimitError
		if errors.As(err, &rle) {
			c.Header("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())))
		}
		log.Warn().Err(err).Interface("request_id", requestID).Msg("extraction rate limited")
	default:
		log.Debug().Err(err).Interface("request_id", requestID).Str("code", code).Msg("request rejected")
	}
	RespondError(c, status, code, msg)
}
