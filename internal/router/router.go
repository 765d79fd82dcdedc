package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"telcheck/internal/config"
	"telcheck/internal/handler"
	"telcheck/internal/logger"
	"telcheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log *logger.Logger,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	// Multipart parts above this size spill to temp files.
	r.MaxMultipartMemory = cfg.Upload.MaxBytes()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Locale(cfg.Analyzer.DefaultLocale))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")

	analyze := v1.Group("/analyze")
	analyze.POST("", analysisH.Upload)
	analyze.POST("/text", analysisH.Text)

	v1.POST("/reports/:format", reportH.Download)

	return r
}
