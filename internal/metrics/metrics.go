// Package metrics provides Prometheus instrumentation for the risk engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ComputationsTotal counts metric computations by metric and scenario.
	ComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regmetrics_computations_total",
		Help: "Total regulatory metric computations",
	}, []string{"metric", "scenario"})

	// ComputationDuration tracks fetch + compute time per metric.
	ComputationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "regmetrics_computation_duration_seconds",
		Help:    "Metric computation latency in seconds, including data fetch",
		Buckets: prometheus.DefBuckets,
	}, []string{"metric"})

	// ComputationErrors counts computations aborted by a data-view failure.
	ComputationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regmetrics_computation_errors_total",
		Help: "Metric computations that failed to fetch their inputs",
	}, []string{"metric"})

	// InfiniteRatios counts ratios that came out +Inf on a zero denominator.
	InfiniteRatios = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regmetrics_infinite_ratios_total",
		Help: "Ratios evaluated over a zero or negative denominator",
	}, []string{"ratio"})

	// LatestRatio holds the last finite value of each headline ratio.
	LatestRatio = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "regmetrics_latest_ratio",
		Help: "Most recently computed finite ratio value",
	}, []string{"ratio", "scenario"})

	// ThresholdBreaches counts breached display thresholds per evaluation.
	ThresholdBreaches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regmetrics_threshold_breaches_total",
		Help: "Regulatory thresholds reported as breached",
	}, []string{"metric"})

	// RecordsFetched tracks how many records each data view returned.
	RecordsFetched = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "regmetrics_records_fetched",
		Help:    "Records returned per data-view call",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"view"})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regmetrics_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "regmetrics_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		path := routePattern(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern uses the matched chi route to keep label cardinality
// bounded; unmatched requests share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
