package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"telcheck/internal/middleware"
	"telcheck/internal/service"
)

// AnalysisHandler handles document analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	maxBodyBytes    int64
}

// NewAnalysisHandler creates a new AnalysisHandler. maxBodyBytes caps the
// JSON body of text analysis requests.
func NewAnalysisHandler(analysisService service.AnalysisService, maxBodyBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, maxBodyBytes: maxBodyBytes}
}

// Upload handles POST /api/v1/analyze
// @Summary Analyze an uploaded document
// @Description Upload a telecom invoice or payment reminder (PDF or TXT) and receive the analysis
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to analyze (PDF or TXT)"
// @Param lang query string false "Response language (en, de)"
// @Success 200 {object} Response{data=domain.AnalysisResult} "Analysis result"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 415 {object} ErrorResponseBody "Content cannot be converted to text"
// @Failure 422 {object} ErrorResponseBody "Text extraction failed"
// @Router /analyze [post]
func (h *AnalysisHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "uploaded file could not be read")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.analysisService.AnalyzeUpload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
		Locale: middleware.GetLocale(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Text handles POST /api/v1/analyze/text
// @Summary Analyze plain text
// @Description Analyze text that was already extracted from a document
// @Tags analysis
// @Accept json
// @Produce json
// @Param body body AnalyzeTextRequest true "Document text"
// @Param lang query string false "Response language (en, de)"
// @Success 200 {object} Response{data=domain.AnalysisResult} "Analysis result"
// @Failure 400 {object} ErrorResponseBody "Invalid request body"
// @Failure 413 {object} ErrorResponseBody "Request body too large"
// @Router /analyze/text [post]
func (h *AnalysisHandler) Text(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds maximum allowed size")
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON with a text field")
		return
	}

	result, err := h.analysisService.AnalyzeText(c.Request.Context(), service.TextInput{
		Text:     req.Text,
		FileName: req.FileName,
		Locale:   middleware.GetLocale(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
