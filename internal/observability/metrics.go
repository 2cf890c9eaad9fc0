package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the underwriting flow.
type Metrics struct {
	// Risk Tool metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,configuration,not_found,transport}
	WeatherAPIDuration prometheus.Histogram

	// Decision metrics.
	Decisions         *prometheus.CounterVec // labels: outcome={APPROVE,DECLINE,REFER}
	DecisionDuration  prometheus.Histogram
	PublishErrors     prometheus.Counter
	PublishingEnabled prometheus.Gauge
}

// NewMetrics creates and registers all underwriting metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "underwriter",
			Name:      "weather_requests_total",
			Help:      "Risk Tool invocations by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "underwriter",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "underwriter",
			Name:      "decisions_total",
			Help:      "Underwriting decisions by outcome.",
		}, []string{"outcome"}),
		DecisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "underwriter",
			Name:      "decision_duration_seconds",
			Help:      "Duration from application creation to decision.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "underwriter",
			Name:      "decision_publish_errors_total",
			Help:      "Decision events that failed to publish.",
		}),
		PublishingEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "underwriter",
			Name:      "decision_publishing_enabled",
			Help:      "1 when decision events are published to Kafka, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.Decisions,
		m.DecisionDuration,
		m.PublishErrors,
		m.PublishingEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		WeatherRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "underwriter", Name: "weather_requests_total"}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "underwriter", Name: "weather_api_duration_seconds"}),
		Decisions:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "underwriter", Name: "decisions_total"}, []string{"outcome"}),
		DecisionDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "underwriter", Name: "decision_duration_seconds"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "underwriter", Name: "decision_publish_errors_total"}),
		PublishingEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "underwriter", Name: "decision_publishing_enabled"}),
	}
}
