package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_http_requests_total",
		Help: "Total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "registry_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000},
	}, []string{"route", "method"})

	MutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_location_mutations_total",
		Help: "Location writes by level and operation",
	}, []string{"level", "operation"})

	SearchResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "registry_search_results",
		Help:    "Number of rows returned per search page",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	}, []string{"level"})

	EventsPublishFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_events_publish_failed_total",
		Help: "Lifecycle events that could not be published",
	}, []string{"level"})

	AuditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_audit_entries_total",
		Help: "Audit log entries written by the worker, by result",
	}, []string{"result"})

	WorkersRunning = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "registry_workers_running",
		Help: "1 while the background worker is running",
	}, []string{"worker"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(EventsPublishFailedTotal)
	prometheus.MustRegister(AuditEntriesTotal)
	prometheus.MustRegister(WorkersRunning)
}
