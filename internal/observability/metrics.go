package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartfit_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route template and status.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartfit_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests, by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	authzDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartfit_api",
		Subsystem: "authz",
		Name:      "denials_total",
		Help:      "Requests rejected by the token verifier or a role gate.",
	}, []string{"stage", "reason"})
	aiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartfit_api",
		Subsystem: "ai",
		Name:      "requests_total",
		Help:      "AI proxy calls by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, authzDenials, aiRequests)
}

// ObserveRequest records one completed HTTP request. Unmatched routes are
// folded into a single label value to bound cardinality.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordDenial counts a rejection. stage is "token", "admin" or "trainer".
func RecordDenial(stage, reason string) {
	authzDenials.WithLabelValues(stage, reason).Inc()
}

// RecordAIRequest counts an AI proxy call by outcome ("ok", "bad_request", "upstream_error").
func RecordAIRequest(outcome string) {
	aiRequests.WithLabelValues(outcome).Inc()
}
