package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"telcheck/internal/domain"
)

// pdfText joins the text layer of every page. Pages that fail to extract are
// skipped; a scan without any text layer yields "".
func (e *Extractor) pdfText(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf: %v", domain.ErrTextExtraction, err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.Text(i)
		if err != nil {
			e.log.Warn().Err(err).Int("page", i+1).Msg("skipping page without extractable text")
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	e.log.Debug().Int("pages", doc.NumPage()).Int("text_length", b.Len()).Msg("pdf text extracted")
	return strings.TrimSpace(b.String()), nil
}
