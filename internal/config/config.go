package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Upload   UploadConfig
	Analyzer AnalyzerConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UploadConfig limits accepted uploads.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// AnalyzerConfig tunes the analysis pipeline.
type AnalyzerConfig struct {
	RulesFile           string          `mapstructure:"rules_file"`
	MaxItems            int             `mapstructure:"max_items"`
	HighAmountThreshold decimal.Decimal `mapstructure:"high_amount_threshold"`
	DefaultLocale       string          `mapstructure:"default_locale"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the TELCHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TELCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("upload.max_file_size_mb", 20)

	// Analyzer defaults; an empty rules file selects the embedded rules
	v.SetDefault("analyzer.rules_file", "")
	v.SetDefault("analyzer.max_items", 25)
	v.SetDefault("analyzer.high_amount_threshold", "150")
	v.SetDefault("analyzer.default_locale", "en")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "TELCHECK_SERVER_PORT",
		"server.read_timeout":            "TELCHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "TELCHECK_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":        "TELCHECK_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":             "TELCHECK_SERVER_ENVIRONMENT",
		"log.level":                      "TELCHECK_LOG_LEVEL",
		"log.format":                     "TELCHECK_LOG_FORMAT",
		"upload.max_file_size_mb":        "TELCHECK_UPLOAD_MAX_FILE_SIZE_MB",
		"analyzer.rules_file":            "TELCHECK_ANALYZER_RULES_FILE",
		"analyzer.max_items":             "TELCHECK_ANALYZER_MAX_ITEMS",
		"analyzer.high_amount_threshold": "TELCHECK_ANALYZER_HIGH_AMOUNT_THRESHOLD",
		"analyzer.default_locale":        "TELCHECK_ANALYZER_DEFAULT_LOCALE",
		"cors.allowed_origins":           "TELCHECK_CORS_ALLOWED_ORIGINS",
		"metrics.enabled":                "TELCHECK_METRICS_ENABLED",
		"metrics.path":                   "TELCHECK_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if TELCHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TELCHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	if cfg.Upload.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("upload.max_file_size_mb must be positive, got %d", cfg.Upload.MaxFileSizeMB)
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(v.GetString("analyzer.high_amount_threshold")))
	if err != nil || !threshold.IsPositive() {
		return nil, fmt.Errorf("analyzer.high_amount_threshold must be a positive number: %q", v.GetString("analyzer.high_amount_threshold"))
	}
	cfg.Analyzer = AnalyzerConfig{
		RulesFile:           v.GetString("analyzer.rules_file"),
		MaxItems:            v.GetInt("analyzer.max_items"),
		HighAmountThreshold: threshold,
		DefaultLocale:       v.GetString("analyzer.default_locale"),
	}
	if cfg.Analyzer.MaxItems < 1 {
		return nil, fmt.Errorf("analyzer.max_items must be at least 1, got %d", cfg.Analyzer.MaxItems)
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	return cfg, nil
}
