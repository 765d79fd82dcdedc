package port

import (
	"context"

	"telcheck/internal/domain"
)

// ExtractInput carries an uploaded document for text extraction.
type ExtractInput struct {
	Data        []byte
	ContentType string
	FileName    string
}

// TextExtractor turns a binary document into plain text. A document without
// a text layer yields an empty text, not an error.
type TextExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (domain.RawDocument, error)
}
