package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
)

// Metrics contains all Prometheus metrics for the predictor.
type Metrics struct {
	SourceAttempts  *prometheus.CounterVec
	SourceLatency   *prometheus.HistogramVec
	SignalFetches   *prometheus.CounterVec
	PipelineLatency *prometheus.HistogramVec
	PipelineErrors  *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on reg.
// Pass prometheus.DefaultRegisterer in production.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// One increment per provider call, labelled by outcome kind
		SourceAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictor_source_attempts_total",
			Help: "Provider calls made by fallback chains, by outcome",
		}, []string{"chain", "source", "outcome"}),

		SourceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "predictor_source_latency_seconds",
			Help:    "Latency of a single provider call",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"chain", "source"}),

		SignalFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictor_signal_fetches_total",
			Help: "Auxiliary signal fetches, by outcome",
		}, []string{"signal", "outcome"}),

		PipelineLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "predictor_pipeline_latency_seconds",
			Help:    "End to end latency of GetSpotPrice and GetAnalysis",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),

		PipelineErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictor_pipeline_errors_total",
			Help: "Failed GetSpotPrice and GetAnalysis calls",
		}, []string{"operation"}),
	}
}

// ObserveAttempt implements fallback.Observer.
func (m *Metrics) ObserveAttempt(chain, source string, kind fallback.Kind, elapsed time.Duration) {
	m.SourceAttempts.WithLabelValues(chain, source, string(kind)).Inc()
	m.SourceLatency.WithLabelValues(chain, source).Observe(elapsed.Seconds())
}

// ObserveSignal implements signals.Observer.
func (m *Metrics) ObserveSignal(name string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "neutral"
	}
	m.SignalFetches.WithLabelValues(name, outcome).Inc()
}

// ObservePipeline records one pipeline run.
func (m *Metrics) ObservePipeline(operation string, elapsed time.Duration, err error) {
	m.PipelineLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.PipelineErrors.WithLabelValues(operation).Inc()
	}
}
