package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(documentsUploadedTotal, documentsProcessedTotal, pipelineDurationSeconds)
}

var documentsUploadedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "documents_uploaded_total",
		Help: "Total number of documents accepted for processing.",
	},
)

var documentsProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "documents_processed_total",
		Help: "Total number of processing runs finished, labeled by terminal status.",
	},
	[]string{"status"}, // 'completed', 'failed'
)

var pipelineDurationSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pipeline_duration_seconds",
		Help:    "End-to-end processing pipeline duration.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	},
	[]string{"status"},
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncDocumentUploaded() { documentsUploadedTotal.Inc() }

func ObservePipeline(status string, seconds float64) {
	documentsProcessedTotal.WithLabelValues(norm(status)).Inc()
	pipelineDurationSeconds.WithLabelValues(norm(status)).Observe(seconds)
}
