package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payroll/internal/domain"
	"payroll/internal/handler"
	"payroll/internal/parser"
	"payroll/internal/service"
	"payroll/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newWorkerHandler() (*handler.WorkerHandler, *mocks.MockWorkerService, *mocks.MockImportService) {
	workerSvc := new(mocks.MockWorkerService)
	importSvc := new(mocks.MockImportService)
	return handler.NewWorkerHandler(workerSvc, importSvc, 4), workerSvc, importSvc
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWorkerHandler_List_Success(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	workers := []domain.Worker{
		{ID: uuid.New(), Name: "张三", Salary: 4900, Job: domain.JobTemplateWorker},
	}
	workerSvc.On("List", mock.Anything).Return(workers, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/workers", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "张三", data[0].(map[string]interface{})["name"])
	workerSvc.AssertExpectations(t)
}

func TestWorkerHandler_List_EmptyIsArray(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()
	workerSvc.On("List", mock.Anything).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/workers", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestWorkerHandler_Delete_Success(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	workerSvc.On("DeleteMany", mock.Anything, ids).Return(1, nil)

	body, _ := json.Marshal(map[string]interface{}{"ids": ids})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/workers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"deleted":1}}`, w.Body.String())
	workerSvc.AssertExpectations(t)
}

func TestWorkerHandler_Delete_EmptyIDs(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()
	workerSvc.On("DeleteMany", mock.Anything, []uuid.UUID{}).Return(0, domain.ErrNoWorkerIDs)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/workers", bytes.NewBufferString(`{"ids":[]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "NO_WORKER_IDS", resp.Error.Code)
}

func TestWorkerHandler_Delete_MalformedBody(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/workers", bytes.NewBufferString(`{"ids":["not-a-uuid"]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
	workerSvc.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
}

func TestWorkerHandler_Update_Success(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	id := uuid.New()
	salary := 5000
	updated := &domain.Worker{ID: id, Name: "李四", Salary: salary, Job: domain.JobTemplateWorker}
	workerSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateWorkerInput) bool {
		return in.Salary != nil && *in.Salary == salary && in.Name == nil
	})).Return(updated, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/workers/"+id.String(), bytes.NewBufferString(`{"salary":5000}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "李四", resp.Data.(map[string]interface{})["name"])
	workerSvc.AssertExpectations(t)
}

func TestWorkerHandler_Update_InvalidID(t *testing.T) {
	h, _, _ := newWorkerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/workers/abc", bytes.NewBufferString(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeEnvelope(t, w).Error.Code)
}

func TestWorkerHandler_Update_NotFound(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	id := uuid.New()
	workerSvc.On("Update", mock.Anything, id, mock.Anything).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/workers/"+id.String(), bytes.NewBufferString(`{"name":"王五"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestWorkerHandler_Update_NegativeSalary(t *testing.T) {
	h, workerSvc, _ := newWorkerHandler()

	id := uuid.New()
	workerSvc.On("Update", mock.Anything, id, mock.Anything).Return(nil, domain.ErrInvalidSalary)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/workers/"+id.String(), bytes.NewBufferString(`{"salary":-1}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SALARY", decodeEnvelope(t, w).Error.Code)
}

type formImage struct {
	name        string
	contentType string
	data        []byte
}

func newImportRequest(t *testing.T, field string, images ...formImage) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, img := range images {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+img.name+`"`)
		hdr.Set("Content-Type", img.contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(img.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/workers/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestWorkerHandler_Import_Success(t *testing.T) {
	h, _, importSvc := newWorkerHandler()

	result := &service.ReconcileResult{
		Workers:       []domain.Worker{{ID: uuid.New(), Name: "张三", Salary: 4900, Job: domain.JobTemplateWorker}},
		ErrorMessages: []string{"信息不完整"},
	}
	importSvc.On("Import", mock.Anything, mock.MatchedBy(func(images []service.ImageUpload) bool {
		return len(images) == 2 &&
			images[0].FileName == "a.jpg" && images[0].ContentType == "image/jpeg" &&
			string(images[0].Data) == "jpeg-bytes" &&
			images[1].FileName == "b.png" && images[1].ContentType == "image/png"
	})).Return(result, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newImportRequest(t, "image",
		formImage{name: "a.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")},
		formImage{name: "b.png", contentType: "image/png", data: []byte("png-bytes")},
	)

	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["workers"], 1)
	assert.Equal(t, []interface{}{"信息不完整"}, data["error_messages"])
	importSvc.AssertExpectations(t)
}

func TestWorkerHandler_Import_NoImagePart(t *testing.T) {
	h, _, importSvc := newWorkerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newImportRequest(t, "file", formImage{name: "a.jpg", contentType: "image/jpeg", data: []byte("x")})

	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_IMAGES", decodeEnvelope(t, w).Error.Code)
	importSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestWorkerHandler_Import_NotMultipart(t *testing.T) {
	h, _, _ := newWorkerHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/workers/import", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeEnvelope(t, w).Error.Code)
}

func TestWorkerHandler_Import_AllFailed(t *testing.T) {
	h, _, importSvc := newWorkerHandler()
	importSvc.On("Import", mock.Anything, mock.Anything).Return(nil, domain.ErrExtractionFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newImportRequest(t, "image", formImage{name: "a.jpg", contentType: "image/jpeg", data: []byte("x")})

	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EXTRACTION_FAILED", decodeEnvelope(t, w).Error.Code)
}

func TestWorkerHandler_Import_RateLimited(t *testing.T) {
	h, _, importSvc := newWorkerHandler()

	rle := parser.NewRateLimitError("openai", assert.AnError, 30)
	importSvc.On("Import", mock.Anything, mock.Anything).
		Return(nil, wrapRateLimited(rle))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newImportRequest(t, "image", formImage{name: "a.jpg", contentType: "image/jpeg", data: []byte("x")})

	h.Import(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "EXTRACTION_RATE_LIMITED", decodeEnvelope(t, w).Error.Code)
}

func TestWorkerHandler_Import_ImageTooLarge(t *testing.T) {
	h, _, importSvc := newWorkerHandler()
	importSvc.On("Import", mock.Anything, mock.Anything).Return(nil, domain.ErrImageTooLarge)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newImportRequest(t, "image", formImage{name: "a.jpg", contentType: "image/jpeg", data: []byte("x")})

	h.Import(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func wrapRateLimited(rle *parser.RateLimitError) error {
	return fmt.Errorf("%w: %w", domain.ErrExtractionRateLimited, rle)
}
