// Package metrics exposes Prometheus instrumentation for the booking service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booking"

var (
	// RequestDuration tracks HTTP request latency by method, route pattern and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestInFlight tracks requests currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// NotificationsSent counts delivery attempts by channel, recipient and outcome.
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Total notification delivery attempts.",
		},
		[]string{"channel", "recipient", "status"},
	)

	// Submissions counts booking and order submissions by outcome.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "submission",
			Name:      "total",
			Help:      "Total booking and order submissions.",
		},
		[]string{"kind", "status"},
	)

	// DBQueryDuration tracks gateway operation latency.
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Duration of database operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// EventsConsumed counts audit events handled by the auditor.
	EventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auditor",
			Name:      "events_consumed_total",
			Help:      "Total submission events consumed.",
		},
		[]string{"status"},
	)
)

// Registry is the registry every collector of the service is registered in.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestInFlight,
		NotificationsSent,
		Submissions,
		DBQueryDuration,
		EventsConsumed,
	)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records latency and in-flight requests. Routes are labelled by their
// chi pattern so path parameters do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		RequestInFlight.Inc()
		defer RequestInFlight.Dec()

		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rr, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rr.status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics page.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}

	return "failed"
}

// RecordNotification records one delivery attempt.
func RecordNotification(channel, recipient string, ok bool) {
	NotificationsSent.WithLabelValues(channel, recipient, outcome(ok)).Inc()
}

// RecordSubmission records one submission outcome.
func RecordSubmission(kind string, ok bool) {
	Submissions.WithLabelValues(kind, outcome(ok)).Inc()
}

// ObserveDBQuery records an operation duration:
//
//	defer metrics.ObserveDBQuery("create_booking", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordEvent records how one consumed event was settled: processed, retry, rejected or malformed.
func RecordEvent(status string) {
	EventsConsumed.WithLabelValues(status).Inc()
}
