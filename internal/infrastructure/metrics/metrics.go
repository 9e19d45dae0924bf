package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated  prometheus.Counter
	EntriesEdited   prometheus.Counter
	EntriesReleased prometheus.Counter

	// Interest metrics
	InterestCalculations *prometheus.CounterVec
	InterestAmount       prometheus.Histogram

	// Use case metrics
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics with the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all Prometheus metrics and registers them with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Entry metrics
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gopawn_entries_created_total",
			Help: "Total number of entries created",
		}),
		EntriesEdited: factory.NewCounter(prometheus.CounterOpts{
			Name: "gopawn_entries_edited_total",
			Help: "Total number of entries edited",
		}),
		EntriesReleased: factory.NewCounter(prometheus.CounterOpts{
			Name: "gopawn_entries_released_total",
			Help: "Total number of entries released",
		}),

		// Interest metrics
		InterestCalculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_interest_calculations_total",
				Help: "Total interest calculations by method",
			},
			[]string{"method"},
		),
		InterestAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gopawn_interest_amount",
			Help:    "Computed interest amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Use case metrics
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gopawn_operation_duration_seconds",
				Help:    "Duration of entry operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_operation_errors_total",
				Help: "Total entry operation errors by reason",
			},
			[]string{"operation", "reason"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gopawn_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Cache metrics
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"cache"},
		),

		// Authentication metrics
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopawn_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action"},
		),
	}
}
