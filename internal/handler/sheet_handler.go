package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"payroll/internal/csvexport"
	"payroll/internal/domain"
	"payroll/internal/service"
)

// SheetHandler handles payroll sheet endpoints.
type SheetHandler struct {
	sheetService service.SheetService
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

// Generate handles POST /api/v1/sheets
// @Summary Generate a payroll sheet
// @Description Split each worker's salary into daily wage and attendance days, store a snapshot and return the workbook
// @Tags sheets
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body GenerateSheetRequest true "Pay period and workers"
// @Success 200 {file} file "Payroll workbook"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 500 {object} ErrorResponseBody "Rendering or storage failure"
// @Router /sheets [post]
func (h *SheetHandler) Generate(c *gin.Context) {
	var input service.GenerateSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sheet, err := h.sheetService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(sheet.FileName))
	c.Header("X-Sheet-Date", strconv.FormatInt(sheet.SheetDate, 10))
	c.Data(http.StatusOK, sheet.ContentType, sheet.Content)
}

// Latest handles GET /api/v1/sheets/latest
// @Summary Latest sheet rows
// @Description Return the salary rows of the most recently generated sheet, or an empty list when none exists
// @Tags sheets
// @Produce json
// @Success 200 {object} Response{data=[]domain.SalarySnapshot} "Sheet rows"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /sheets/latest [get]
func (h *SheetHandler) Latest(c *gin.Context) {
	latest, err := h.sheetService.Latest(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if latest == nil || latest.Rows == nil {
		RespondOK(c, []domain.SalarySnapshot{})
		return
	}
	RespondOK(c, latest.Rows)
}

// ExportCSV handles GET /api/v1/sheets/latest/export/csv
// @Summary Export latest sheet as CSV
// @Description Download the rows of the most recent sheet as a UTF-8 CSV with BOM
// @Tags sheets
// @Produce text/csv
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} ErrorResponseBody "No sheet generated yet"
// @Router /sheets/latest/export/csv [get]
func (h *SheetHandler) ExportCSV(c *gin.Context) {
	latest, err := h.sheetService.Latest(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if latest == nil {
		HandleError(c, domain.ErrNotFound)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf, nil)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, fmt.Errorf("sheetHandler.ExportCSV header: %w", err))
		return
	}
	if err := w.WriteSnapshots(latest.Rows); err != nil {
		HandleError(c, fmt.Errorf("sheetHandler.ExportCSV rows: %w", err))
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, fmt.Errorf("sheetHandler.ExportCSV flush: %w", err))
		return
	}

	filename := csvexport.BuildFilename(latest.SalaryDate, latest.SheetDate)
	log.Debug().Int64("sheet_date", latest.SheetDate).Int("rows", len(latest.Rows)).Msg("sheetHandler.ExportCSV: exporting")

	c.Header("Content-Disposition", contentDisposition(filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// contentDisposition builds an attachment header with an ASCII fallback name and the
// UTF-8 name in RFC 5987 form.
func contentDisposition(filename string) string {
	fallback := "payroll" + filepath.Ext(filename)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(filename))
}
