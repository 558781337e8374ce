// Package metrics exposes Prometheus metrics for business events and
// database pool health.
package metrics

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/najouaboughida-blip/rapport-stage/pkg/tracing"
)

// BusinessMetrics tracks analysis and generation outcomes.
type BusinessMetrics struct {
	AnalysesTotal          *prometheus.CounterVec
	AnalysisDuration       *prometheus.HistogramVec
	SectionsGeneratedTotal *prometheus.CounterVec
	SimulatedSectionsTotal prometheus.Counter
	GenerationDuration     *prometheus.HistogramVec
}

// NewBusinessMetrics registers the business metric set under the given
// namespace.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	return &BusinessMetrics{
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of style analyses by status.",
		}, []string{"status"}),
		AnalysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Style analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		SectionsGeneratedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sections_generated_total",
			Help:      "Total number of generated report sections by status.",
		}, []string{"status"}),
		SimulatedSectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulated_sections_total",
			Help:      "Sections produced by the simulated fallback instead of the model.",
		}),
		GenerationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Section generation duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"status"}),
	}
}

// ObserveDurationWithExemplar records a duration and, when a trace is
// active, attaches the trace ID as an exemplar.
func (m *BusinessMetrics) ObserveDurationWithExemplar(ctx context.Context, histogram *prometheus.HistogramVec, seconds float64, status string) {
	observer := histogram.WithLabelValues(status)

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		observer.Observe(seconds)
		return
	}

	if exemplarObserver, ok := observer.(prometheus.ExemplarObserver); ok {
		exemplarObserver.ObserveWithExemplar(seconds, prometheus.Labels{"trace_id": traceID})
		return
	}
	observer.Observe(seconds)
}

// DatabaseMetrics tracks connection pool health.
type DatabaseMetrics struct {
	openConnections prometheus.Gauge
	inUse           prometheus.Gauge
	idle            prometheus.Gauge
	waitCount       prometheus.Gauge
	waitDuration    prometheus.Gauge
}

// NewDatabaseMetrics registers the database metric set under the given
// namespace.
func NewDatabaseMetrics(namespace string) *DatabaseMetrics {
	return &DatabaseMetrics{
		openConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open database connections.",
		}),
		inUse: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Database connections currently in use.",
		}),
		idle: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_idle",
			Help:      "Idle database connections.",
		}),
		waitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total connections waited for.",
		}),
		waitDuration: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_duration_seconds",
			Help:      "Total time blocked waiting for a connection.",
		}),
	}
}

// UpdateDBStats refreshes the pool gauges from the live pool stats.
func (m *DatabaseMetrics) UpdateDBStats(db *sql.DB) {
	stats := db.Stats()
	m.openConnections.Set(float64(stats.OpenConnections))
	m.inUse.Set(float64(stats.InUse))
	m.idle.Set(float64(stats.Idle))
	m.waitCount.Set(float64(stats.WaitCount))
	m.waitDuration.Set(stats.WaitDuration.Seconds())
}
