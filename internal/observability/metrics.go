// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// LedgerWrites counts daily-data upserts by outcome ("created" or "updated").
	LedgerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrack_ledger_writes_total",
		Help: "Total number of daily nutrient upserts by outcome",
	}, []string{"result"})

	// LoginAttempts counts login attempts by outcome ("success" or "failure").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrack_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"result"})

	// Registrations counts successful account registrations.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nutrack_registrations_total",
		Help: "Total number of successful registrations",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nutrack_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
