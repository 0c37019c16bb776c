package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"payroll/internal/domain"
	"payroll/internal/service"
)

// WorkerHandler handles worker management and roster import endpoints.
type WorkerHandler struct {
	workerService service.WorkerService
	importService service.ImportService
	maxUploadMB   int64
}

// NewWorkerHandler creates a new WorkerHandler. maxUploadMB caps the whole multipart body.
func NewWorkerHandler(workerService service.WorkerService, importService service.ImportService, maxUploadMB int64) *WorkerHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &WorkerHandler{
		workerService: workerService,
		importService: importService,
		maxUploadMB:   maxUploadMB,
	}
}

// List handles GET /api/v1/workers
// @Summary List workers
// @Description List every stored worker with the job tier derived from the salary
// @Tags workers
// @Produce json
// @Success 200 {object} Response{data=[]domain.Worker} "List of workers"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /workers [get]
func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.workerService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if workers == nil {
		workers = []domain.Worker{}
	}
	RespondOK(c, workers)
}

// Delete handles DELETE /api/v1/workers
// @Summary Delete workers
// @Description Delete the given workers. Unknown ids are ignored.
// @Tags workers
// @Accept json
// @Produce json
// @Param request body DeleteWorkersRequest true "Worker ids"
// @Success 200 {object} Response{data=DeleteWorkersResponse} "Workers deleted"
// @Failure 400 {object} ErrorResponseBody "No ids given"
// @Router /workers [delete]
func (h *WorkerHandler) Delete(c *gin.Context) {
	var input service.DeleteWorkersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	deleted, err := h.workerService.DeleteMany(c.Request.Context(), input.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DeleteWorkersResponse{Deleted: deleted})
}

// Update handles PATCH /api/v1/workers/:id
// @Summary Update a worker
// @Description Update the given fields of a worker; absent fields are left unchanged
// @Tags workers
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param request body UpdateWorkerRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.Worker} "Updated worker"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 404 {object} ErrorResponseBody "Worker not found"
// @Router /workers/{id} [patch]
func (h *WorkerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid worker ID")
		return
	}

	var input service.UpdateWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	worker, err := h.workerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, worker)
}

// Import handles POST /api/v1/workers/import
// @Summary Import workers from images
// @Description Extract worker records from one or more roster or ID card photos and merge them into the store
// @Tags workers
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Roster image (repeatable)"
// @Success 200 {object} Response{data=service.ReconcileResult} "Merged workers and diagnostics"
// @Failure 400 {object} ErrorResponseBody "No usable image"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 429 {object} ErrorResponseBody "Extraction rate limited"
// @Router /workers/import [post]
func (h *WorkerHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadMB<<20)

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart form required")
		return
	}

	files := form.File["image"]
	if len(files) == 0 {
		HandleError(c, domain.ErrNoImages)
		return
	}

	images := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			log.Warn().Err(err).Str("file", fh.Filename).Msg("handler.Import: unreadable upload")
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "failed to read uploaded file")
			return
		}
		images = append(images, service.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result, err := h.importService.Import(c.Request.Context(), images)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
