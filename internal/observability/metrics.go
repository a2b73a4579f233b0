// Package observability provides Prometheus metrics for monitoring the
// analysis pipeline and the HTTP API.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// Metrics holds all metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal       *prometheus.CounterVec
	recordsSavedTotal   prometheus.Counter
	recordsDeletedTotal prometheus.Counter
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance with all collectors registered on a
// fresh registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fluwatch_analyses_total",
				Help: "Total number of classified analyses by verdict",
			},
			[]string{"verdict"},
		),
		recordsSavedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluwatch_records_saved_total",
			Help: "Total number of analysis records saved",
		}),
		recordsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluwatch_records_deleted_total",
			Help: "Total number of analysis records deleted",
		}),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fluwatch_http_request_duration_seconds",
				Help:    "Time taken to serve HTTP requests",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"method", "path", "status"},
		),
	}

	collectors := []prometheus.Collector{
		m.analysesTotal,
		m.recordsSavedTotal,
		m.recordsDeletedTotal,
		m.httpRequestDuration,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.New(err).
				Component("observability").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}
	return m, nil
}

// CountAnalysis records one classification outcome.
func (m *Metrics) CountAnalysis(verdict string) {
	m.analysesTotal.WithLabelValues(verdict).Inc()
}

// CountRecordSaved records one persisted analysis.
func (m *Metrics) CountRecordSaved() {
	m.recordsSavedTotal.Inc()
}

// CountRecordDeleted records one deleted analysis.
func (m *Metrics) CountRecordDeleted() {
	m.recordsDeletedTotal.Inc()
}

// ObserveHTTPRequest records the duration of one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// Handler returns the scrape handler for the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
