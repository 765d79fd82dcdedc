// Package extract turns uploaded PDF and plain-text files into document text.
package extract

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"telcheck/internal/domain"
	"telcheck/internal/logger"
	"telcheck/internal/port"
)

// Extractor dispatches on the content type of the upload.
type Extractor struct {
	log *logger.Logger
}

// New creates an Extractor. A nil log discards page-level warnings.
func New(log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{log: log.WithComponent("extract")}
}

var _ port.TextExtractor = (*Extractor)(nil)

// Extract implements port.TextExtractor.
func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawDocument{}, err
	}

	mediaType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if mt, _, err := mime.ParseMediaType(input.ContentType); err == nil {
		mediaType = mt
	}

	var (
		text string
		err  error
	)
	switch domain.AllowedContentTypes[mediaType] {
	case domain.FileTypePDF:
		text, err = e.pdfText(ctx, input.Data)
	case domain.FileTypeTXT:
		text = plainText(input.Data)
	default:
		return domain.RawDocument{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, input.ContentType)
	}
	if err != nil {
		return domain.RawDocument{}, err
	}
	return domain.RawDocument{Text: text, FileName: input.FileName}, nil
}
