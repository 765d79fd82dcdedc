package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"telcheck/internal/domain"
	"telcheck/internal/middleware"
	"telcheck/internal/service"
)

// ReportHandler handles report download endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Download handles POST /api/v1/reports/:format
// @Summary Render an analysis result
// @Description Render a previously returned analysis result as a PDF, XLSX or CSV download
// @Tags reports
// @Accept json
// @Produce application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param format path string true "Report format (pdf, xlsx, csv)"
// @Param body body domain.AnalysisResult true "Analysis result"
// @Param lang query string false "Report language (en, de)"
// @Success 200 {file} file "Report file"
// @Failure 400 {object} ErrorResponseBody "Invalid result or unknown format"
// @Router /reports/{format} [post]
func (h *ReportHandler) Download(c *gin.Context) {
	format := domain.ReportFormat(strings.ToLower(c.Param("format")))

	var result domain.AnalysisResult
	if err := c.ShouldBindJSON(&result); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be an analysis result")
		return
	}

	file, err := h.reportService.Render(c.Request.Context(), format, &result, middleware.GetLocale(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
