package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the engine's operational metrics via Prometheus.
type Recorder struct {
	recordsNormalized *prometheus.CounterVec
	analysesTotal     *prometheus.CounterVec
	productsLoaded    prometheus.Gauge
	latency           *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsNormalized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "srpulse_records_normalized_total",
				Help: "Raw records processed by the normalizer, by outcome",
			},
			[]string{"outcome"},
		),
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "srpulse_analyses_total",
				Help: "Analyses computed, by scope (full or filtered)",
			},
			[]string{"scope"},
		),
		productsLoaded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "srpulse_products_loaded",
				Help: "Products currently held in the loaded collection",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "srpulse_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordNormalized counts one raw record by outcome ("ok" or "failed").
func (r *Recorder) RecordNormalized(outcome string) {
	r.recordsNormalized.WithLabelValues(outcome).Inc()
}

// RecordAnalysis counts one computed analysis by scope.
func (r *Recorder) RecordAnalysis(scope string) {
	r.analysesTotal.WithLabelValues(scope).Inc()
}

// SetProductsLoaded records the size of the loaded collection.
func (r *Recorder) SetProductsLoaded(n int) {
	r.productsLoaded.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
