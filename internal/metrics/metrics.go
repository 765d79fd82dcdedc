// Package metrics exposes Prometheus counters for analyses and exports.
// Every recorder is a no-op until Init has been called.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "telcheck_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	analysesTotal    *prometheus.CounterVec
	analysisLatency  *prometheus.HistogramVec
	lineItems        prometheus.Histogram
	extractionErrors *prometheus.CounterVec
	reportsTotal     *prometheus.CounterVec
)

// Init registers the metrics with the default registerer.
func Init() {
	InitWith(prometheus.DefaultRegisterer)
}

// InitWith registers the metrics with reg. Only the first call has an effect.
func InitWith(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		analysesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analyses_total",
				Help: "Total analyzed documents by document type and traffic light",
			},
			[]string{"document_type", "status"},
		)
		analysisLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analysis_duration_seconds",
				Help:    "Extraction plus analysis latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		)
		lineItems = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "line_items",
				Help:    "Number of line items recognized per document",
				Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 25, 30},
			},
		)
		extractionErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "extraction_errors_total",
				Help: "Total rejected or unreadable uploads by reason",
			},
			[]string{"reason"},
		)
		reportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reports_total",
				Help: "Total rendered reports by format and result",
			},
			[]string{"format", "result"},
		)

		reg.MustRegister(
			analysesTotal,
			analysisLatency,
			lineItems,
			extractionErrors,
			reportsTotal,
		)
	})
}

// ObserveAnalysis records one completed analysis.
func ObserveAnalysis(source, documentType, status string, items int, duration time.Duration) {
	if source == "" {
		source = "unknown"
	}
	if analysesTotal != nil {
		analysesTotal.WithLabelValues(documentType, status).Inc()
	}
	if analysisLatency != nil {
		analysisLatency.WithLabelValues(source).Observe(duration.Seconds())
	}
	if lineItems != nil {
		lineItems.Observe(float64(items))
	}
}

// IncExtractionError increments the extraction error counter.
func IncExtractionError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if extractionErrors != nil {
		extractionErrors.WithLabelValues(reason).Inc()
	}
}

// ObserveReport records one report rendering.
func ObserveReport(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	if reportsTotal != nil {
		reportsTotal.WithLabelValues(format, result).Inc()
	}
}
