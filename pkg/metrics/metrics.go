package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fasttrack", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fasttrack", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	ConnectionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fasttrack", Name: "connection_transitions_total", Help: "Connection lifecycle events",
	}, []string{"event"})
	TierAssignments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fasttrack", Name: "tier_assignments_total", Help: "Tier classification writes",
	}, []string{"tier"})
	StoreErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fasttrack", Name: "store_errors_total", Help: "Key-value store failures",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, ConnectionTransitions, TierAssignments, StoreErrors)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveHTTP(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ConnectionEvent 记录 created/accepted/declined
func ConnectionEvent(event string) { ConnectionTransitions.WithLabelValues(event).Inc() }

// TierAssigned 记录分级写入，tier 为空表示取消分级
func TierAssigned(tier string) {
	if tier == "" {
		tier = "none"
	}
	TierAssignments.WithLabelValues(tier).Inc()
}
