package port

import "telcheck/internal/domain"

// ReportRenderer renders an analysis result as a downloadable file.
type ReportRenderer interface {
	Render(result *domain.AnalysisResult, locale string) ([]byte, error)
	Format() domain.ReportFormat
	ContentType() string
}
