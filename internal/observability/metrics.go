package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics bundles the Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec

	authRejections    *prometheus.CounterVec
	accidentsReported prometheus.Counter
	smsDispatched     *prometheus.CounterVec
}

// NewMetrics registers all collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of error responses by error code",
			},
			[]string{"method", "path", "code"},
		),
		authRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_rejections_total",
				Help: "Requests rejected by the access guard",
			},
			[]string{"kind"},
		),
		accidentsReported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "accidents_reported_total",
				Help: "Total number of accident reports stored",
			},
		),
		smsDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_dispatched_total",
				Help: "Outbound SMS dispatch attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.errorsTotal,
		m.authRejections,
		m.accidentsReported,
		m.smsDispatched,
	)
	return m
}

// RecordRequest increments counters for completed requests.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters by domain error code.
func (m *Metrics) RecordError(method, path, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method, path, code).Inc()
	switch code {
	case "UNAUTHORIZED":
		m.authRejections.WithLabelValues("unauthenticated").Inc()
	case "FORBIDDEN":
		m.authRejections.WithLabelValues("forbidden").Inc()
	}
}

// RecordAccidentReported counts stored accident reports.
func (m *Metrics) RecordAccidentReported() {
	if m == nil {
		return
	}
	m.accidentsReported.Inc()
}

// RecordSMSDispatch counts an SMS dispatch attempt.
func (m *Metrics) RecordSMSDispatch(outcome string) {
	if m == nil {
		return
	}
	m.smsDispatched.WithLabelValues(outcome).Inc()
}

// Serve exposes /metrics on a side listener so the scrape endpoint stays
// off the public API port. Blocks until the server stops.
func (m *Metrics) Serve(addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	logger.Info("metrics listener started", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}
