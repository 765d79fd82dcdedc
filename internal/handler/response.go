package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"telcheck/internal/domain"
	"telcheck/internal/logger"
	"telcheck/internal/middleware"
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
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrEmptyUpload):
		return http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, txt"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "content type cannot be converted to text"
	case errors.Is(err, domain.ErrTextExtraction):
		return http.StatusUnprocessableEntity, "TEXT_EXTRACTION_FAILED", "text could not be extracted from the file"
	case errors.Is(err, domain.ErrInvalidResult):
		return http.StatusBadRequest, "INVALID_RESULT", "analysis result is invalid"
	case errors.Is(err, domain.ErrUnknownReportFormat):
		return http.StatusBadRequest, "UNKNOWN_REPORT_FORMAT", "unknown report format; allowed: pdf, xlsx, csv"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	log := logger.FromContext(c.Request.Context(), logger.Nop())
	if status >= 500 {
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("internal error")
	} else {
		log.Debug().Err(err).Str("code", code).Msg("request rejected")
	}
	RespondError(c, status, code, msg)
}
