package domain

import "errors"

var (
	ErrMissingFile         = errors.New("file is required")
	ErrEmptyUpload         = errors.New("uploaded file is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat   = errors.New("unsupported content type for text extraction")
	ErrTextExtraction      = errors.New("text extraction failed")
	ErrInvalidResult       = errors.New("analysis result is invalid")
	ErrInvalidRuleset      = errors.New("rule set is invalid")
	ErrUnknownReportFormat = errors.New("unknown report format")
)
