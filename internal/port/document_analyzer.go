package port

import (
	"context"

	"telcheck/internal/domain"
)

// DocumentAnalyzer turns document text into an analysis result. It never
// fails; uncertainty is reported inside the result.
type DocumentAnalyzer interface {
	AnalyzeLocalized(ctx context.Context, doc domain.RawDocument, locale string) domain.AnalysisResult
}
