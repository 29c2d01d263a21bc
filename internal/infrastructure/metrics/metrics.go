package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Matching engine metrics
	CandidatesGenerated *prometheus.CounterVec
	CandidatesDiscarded *prometheus.CounterVec
	SuggestionsCreated  prometheus.Counter
	MatchRunDuration    prometheus.Histogram
	MatchConfidence     prometheus.Histogram

	// Decision metrics
	SuggestionsApproved prometheus.Counter
	SuggestionsRejected prometheus.Counter
	ApprovalErrors      *prometheus.CounterVec

	// Billing gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	GatewayFailures *prometheus.CounterVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Matching engine metrics
		CandidatesGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_candidates_generated_total",
				Help: "Total match candidates produced, by generator",
			},
			[]string{"generator"},
		),
		CandidatesDiscarded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_candidates_discarded_total",
				Help: "Total match candidates discarded, by reason",
			},
			[]string{"reason"},
		),
		SuggestionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paymatch_suggestions_created_total",
			Help: "Total pending match suggestions persisted",
		}),
		MatchRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymatch_match_run_duration_seconds",
			Help:    "Duration of a full match run for one transaction",
			Buckets: prometheus.DefBuckets,
		}),
		MatchConfidence: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymatch_match_confidence",
			Help:    "Combined confidence of persisted suggestions",
			Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1},
		}),

		// Decision metrics
		SuggestionsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paymatch_suggestions_approved_total",
			Help: "Total suggestions approved by operators",
		}),
		SuggestionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paymatch_suggestions_rejected_total",
			Help: "Total suggestions rejected by operators",
		}),
		ApprovalErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_approval_errors_total",
				Help: "Total approval failures by type",
			},
			[]string{"error_type"},
		),

		// Billing gateway metrics
		GatewayRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_gateway_requests_total",
				Help: "Total billing gateway requests",
			},
			[]string{"operation", "status"},
		),
		GatewayDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymatch_gateway_duration_seconds",
				Help:    "Billing gateway request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		GatewayFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_gateway_failures_total",
				Help: "Total billing gateway failures by source",
			},
			[]string{"source"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymatch_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "paymatch_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymatch_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paymatch_outbox_events_published_total",
			Help: "Total outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paymatch_outbox_publish_errors_total",
			Help: "Total outbox publish failures",
		}),
	}
}
