package service

import (
	"context"
	"fmt"

	"telcheck/internal/csvexport"
	"telcheck/internal/domain"
	"telcheck/internal/metrics"
	"telcheck/internal/port"
)

// ReportFile is a rendered download.
type ReportFile struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ReportService renders analysis results in the supported export formats.
type ReportService interface {
	Render(ctx context.Context, format domain.ReportFormat, result *domain.AnalysisResult, locale string) (*ReportFile, error)
}

type reportService struct {
	renderers map[domain.ReportFormat]port.ReportRenderer
}

// NewReportService creates a ReportService over the given renderers.
func NewReportService(renderers ...port.ReportRenderer) ReportService {
	m := make(map[domain.ReportFormat]port.ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &reportService{renderers: m}
}

func (s *reportService) Render(ctx context.Context, format domain.ReportFormat, result *domain.AnalysisResult, locale string) (*ReportFile, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReportFormat, format)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateResult(result); err != nil {
		return nil, err
	}

	data, err := r.Render(result, locale)
	metrics.ObserveReport(string(format), err)
	if err != nil {
		return nil, fmt.Errorf("rendering %s report: %w", format, err)
	}
	return &ReportFile{
		Data:        data,
		ContentType: r.ContentType(),
		FileName:    csvexport.BuildFilename(csvexport.DefaultBaseName, format),
	}, nil
}

// ValidateResult checks the closed values of a result posted back by a client.
func ValidateResult(result *domain.AnalysisResult) error {
	if result == nil {
		return domain.ErrInvalidResult
	}
	if result.Provider != "" && !result.Provider.Valid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidResult, result.Provider)
	}
	if result.DocumentType != "" && !result.DocumentType.Valid() {
		return fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidResult, result.DocumentType)
	}
	if result.Risk.Status != "" && result.Risk.Status.Severity() < 0 {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidResult, result.Risk.Status)
	}
	if result.Risk.Score < 0 || result.Risk.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", domain.ErrInvalidResult, result.Risk.Score)
	}
	for i, it := range result.Items {
		if !it.Category.Valid() {
			return fmt.Errorf("%w: item %d has unknown category %q", domain.ErrInvalidResult, i, it.Category)
		}
	}
	return nil
}
