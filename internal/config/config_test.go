package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcheck/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, int64(20), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 25, cfg.Analyzer.MaxItems)
	assert.True(t, cfg.Analyzer.HighAmountThreshold.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "en", cfg.Analyzer.DefaultLocale)
	assert.Empty(t, cfg.Analyzer.RulesFile)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELCHECK_SERVER_PORT", ":9090")
	t.Setenv("PORT", "7000")
	t.Setenv("TELCHECK_ANALYZER_MAX_ITEMS", "20")
	t.Setenv("TELCHECK_ANALYZER_HIGH_AMOUNT_THRESHOLD", "99,5")
	t.Setenv("TELCHECK_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TELCHECK_METRICS_ENABLED", "false")

	_, err := config.Load()
	require.Error(t, err, "comma decimal is not accepted")

	t.Setenv("TELCHECK_ANALYZER_HIGH_AMOUNT_THRESHOLD", "99.5")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Analyzer.MaxItems)
	assert.True(t, cfg.Analyzer.HighAmountThreshold.Equal(decimal.RequireFromString("99.5")))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		env, value string
	}{
		{"TELCHECK_ANALYZER_MAX_ITEMS", "0"},
		{"TELCHECK_ANALYZER_HIGH_AMOUNT_THRESHOLD", "-1"},
		{"TELCHECK_UPLOAD_MAX_FILE_SIZE_MB", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
