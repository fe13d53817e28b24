// Package metrics exposes the Prometheus collectors for the career guidance
// API. Collectors register on the default registry at package init and are
// served by promhttp on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "career_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_api_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_db_query_duration_seconds",
			Help:    "Duration of PostgreSQL queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_db_query_errors_total",
			Help: "Total number of PostgreSQL query errors",
		},
		[]string{"operation", "table"},
	)

	// Recommendation
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_recommendations_total",
			Help: "Recommendations produced, by stream",
		},
		[]string{"stream"},
	)

	ExplanationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_explanation_duration_seconds",
			Help:    "Latency of explanation generation calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	ExplanationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_explanation_failures_total",
			Help: "Failed explanation generation calls, by reason",
		},
		[]string{"reason"}, // "error", "empty", "breaker_open"
	)

	ExplainerBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "career_explainer_breaker_state",
			Help: "Explainer circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Seeding
	SeedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_seed_records_total",
			Help: "Records loaded by the seed command, by dataset",
		},
		[]string{"dataset"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited(route string) {
	RateLimitRejections.WithLabelValues(route).Inc()
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordRecommendation counts a produced recommendation.
func RecordRecommendation(stream string) {
	RecommendationsTotal.WithLabelValues(stream).Inc()
}

// RecordExplanation records one explanation call. reason is empty on success.
func RecordExplanation(duration time.Duration, reason string) {
	ExplanationDuration.Observe(duration.Seconds())
	if reason != "" {
		ExplanationFailures.WithLabelValues(reason).Inc()
	}
}

// SetBreakerState publishes the explainer breaker state.
func SetBreakerState(state int) {
	ExplainerBreakerState.Set(float64(state))
}

// RecordSeeded counts records loaded into a dataset.
func RecordSeeded(dataset string, n int) {
	SeedRecordsTotal.WithLabelValues(dataset).Add(float64(n))
}
