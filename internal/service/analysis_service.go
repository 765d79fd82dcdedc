package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"telcheck/internal/config"
	"telcheck/internal/domain"
	"telcheck/internal/logger"
	"telcheck/internal/metrics"
	"telcheck/internal/port"
)

// UploadInput is the DTO for file analysis requests.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	Locale string
}

// TextInput is the DTO for analyzing already extracted text.
type TextInput struct {
	Text     string
	FileName string
	Locale   string
}

// AnalysisService defines the document analysis contract.
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, input UploadInput) (*domain.AnalysisResult, error)
	AnalyzeText(ctx context.Context, input TextInput) (*domain.AnalysisResult, error)
}

type analysisService struct {
	extractor port.TextExtractor
	analyzer  port.DocumentAnalyzer
	cfg       *config.UploadConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	extractor port.TextExtractor,
	analyzer port.DocumentAnalyzer,
	cfg *config.UploadConfig,
	log *logger.Logger,
) AnalysisService {
	if log == nil {
		log = logger.Nop()
	}
	return &analysisService{
		extractor: extractor,
		analyzer:  analyzer,
		cfg:       cfg,
		log:       log.WithComponent("analysis_service"),
		now:       time.Now,
	}
}

func (s *analysisService) AnalyzeUpload(ctx context.Context, input UploadInput) (*domain.AnalysisResult, error) {
	start := s.now()
	if input.File == nil || input.Header == nil {
		return nil, s.reject(domain.ErrMissingFile, "missing_file")
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, s.reject(domain.ErrUnsupportedFileType, "unsupported_file_type")
	}

	// Validate file size
	maxBytes := s.cfg.MaxBytes()
	if input.Header.Size > maxBytes {
		return nil, s.reject(domain.ErrFileTooLarge, "file_too_large")
	}

	data, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, s.reject(domain.ErrFileTooLarge, "file_too_large")
	}
	if len(data) == 0 {
		return nil, s.reject(domain.ErrEmptyUpload, "empty_upload")
	}

	// Magic-byte detection must agree with the extension
	detectedType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil || domain.AllowedContentTypes[detectedType] != fileType {
		return nil, s.reject(domain.ErrUnsupportedFileType, "content_mismatch")
	}

	doc, err := s.extractor.Extract(ctx, port.ExtractInput{
		Data:        data,
		ContentType: domain.AllowedFileTypes[fileType],
		FileName:    input.Header.Filename,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTextExtraction) {
			metrics.IncExtractionError("text_extraction")
		}
		s.log.WithError(err).Warn().Str("file_name", input.Header.Filename).Msg("text extraction failed")
		return nil, fmt.Errorf("extracting text from %s: %w", input.Header.Filename, err)
	}

	return s.analyze(ctx, "upload", doc, input.Locale, start), nil
}

func (s *analysisService) AnalyzeText(ctx context.Context, input TextInput) (*domain.AnalysisResult, error) {
	start := s.now()
	doc := domain.RawDocument{Text: input.Text, FileName: input.FileName}
	return s.analyze(ctx, "text", doc, input.Locale, start), nil
}

func (s *analysisService) analyze(ctx context.Context, source string, doc domain.RawDocument, locale string, start time.Time) *domain.AnalysisResult {
	res := s.analyzer.AnalyzeLocalized(ctx, doc, locale)
	res.ID = uuid.New()
	res.AnalyzedAt = s.now().UTC()

	elapsed := s.now().Sub(start)
	metrics.ObserveAnalysis(source, string(res.DocumentType), string(res.Risk.Status), len(res.Items), elapsed)

	logger.FromContext(ctx, s.log).Info().
		Str("analysis_id", res.ID.String()).
		Str("source", source).
		Str("provider", string(res.Provider)).
		Str("document_type", string(res.DocumentType)).
		Str("status", string(res.Risk.Status)).
		Int("score", res.Risk.Score).
		Int("items", len(res.Items)).
		Int("text_length", res.TextLength).
		Dur("latency", elapsed).
		Msg("document analyzed")

	return &res
}

func (s *analysisService) reject(err error, reason string) error {
	metrics.IncExtractionError(reason)
	s.log.Debug().Str("reason", reason).Msg("upload rejected")
	return err
}
