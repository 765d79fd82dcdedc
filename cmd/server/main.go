package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gin-gonic/gin"

	"telcheck/internal/analyzer"
	"telcheck/internal/config"
	"telcheck/internal/csvexport"
	"telcheck/internal/extract"
	"telcheck/internal/handler"
	"telcheck/internal/logger"
	"telcheck/internal/metrics"
	"telcheck/internal/report"
	"telcheck/internal/router"
	"telcheck/internal/rules"
	"telcheck/internal/service"
	"telcheck/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog := logger.New("telcheck", cfg.Log.Format, cfg.Log.Level)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	rs, err := rules.Load(cfg.Analyzer.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	// Initialize pipeline
	engine := validator.NewEngine(validator.NewDefaultRegistry())
	az := analyzer.New(rs, engine, analyzer.Options{
		MaxItems:            cfg.Analyzer.MaxItems,
		HighAmountThreshold: cfg.Analyzer.HighAmountThreshold,
	})
	extractor := extract.New(appLog)

	// Initialize services
	analysisSvc := service.NewAnalysisService(extractor, az, &cfg.Upload, appLog)
	reportSvc := service.NewReportService(
		report.NewPDFRenderer(),
		report.NewXLSXRenderer(),
		csvexport.NewRenderer(),
	)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, cfg.Upload.MaxBytes())
	reportH := handler.NewReportHandler(reportSvc)
	var draining atomic.Bool
	healthH := handler.NewHealthHandler(func() error {
		if draining.Load() {
			return errors.New("shutting down")
		}
		return nil
	})

	// Setup router
	r := router.Setup(cfg, appLog, analysisH, reportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info().Str("addr", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info().Msg("shutting down server")
	draining.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Info().Msg("server stopped")
	return nil
}
