// Command analyze checks a single telecom invoice or payment reminder from
// the command line and prints the result as JSON or writes a report file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"telcheck/internal/analyzer"
	"telcheck/internal/csvexport"
	"telcheck/internal/domain"
	"telcheck/internal/extract"
	"telcheck/internal/logger"
	"telcheck/internal/port"
	"telcheck/internal/report"
	"telcheck/internal/rules"
	"telcheck/internal/service"
	"telcheck/internal/validator"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "path to a .pdf or .txt document")
	lang := fs.String("lang", "en", "output language (en, de)")
	format := fs.String("format", "json", "output format (json, pdf, xlsx, csv)")
	out := fs.String("out", "", "output path; defaults to stdout for json and csv")
	rulesFile := fs.String("rules", "", "optional rules YAML overriding the embedded set")
	verbose := fs.Bool("v", false, "log extraction details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(stderr, "telcheck-cli", "console", level)

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *file, err)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(*file), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}

	rs, err := rules.Load(*rulesFile)
	if err != nil {
		return err
	}
	az := analyzer.New(rs, validator.NewEngine(validator.NewDefaultRegistry()), analyzer.Options{})

	doc, err := extract.New(log).Extract(ctx, port.ExtractInput{
		Data:        data,
		ContentType: domain.AllowedFileTypes[fileType],
		FileName:    filepath.Base(*file),
	})
	if err != nil {
		return err
	}

	result := az.AnalyzeLocalized(ctx, doc, *lang)
	result.ID = uuid.New()
	result.AnalyzedAt = time.Now().UTC()

	reportFormat := domain.ReportFormat(strings.ToLower(*format))
	if reportFormat == "json" {
		return writeJSON(*out, stdout, &result)
	}

	reports := service.NewReportService(
		report.NewPDFRenderer(),
		report.NewXLSXRenderer(),
		csvexport.NewRenderer(),
	)
	rendered, err := reports.Render(ctx, reportFormat, &result, *lang)
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		if reportFormat == domain.ReportFormatCSV {
			_, err = stdout.Write(rendered.Data)
			return err
		}
		target = rendered.FileName
	}
	if err := os.WriteFile(target, rendered.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	fmt.Fprintln(stderr, "wrote", target)
	return nil
}

func writeJSON(path string, stdout io.Writer, result *domain.AnalysisResult) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
