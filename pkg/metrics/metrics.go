package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors. All methods are safe on
// a nil *Registry so callers can run with metrics disabled.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	ProjectionDuration *prometheus.HistogramVec
	CatalogListings    *prometheus.GaugeVec
	ConfigUpdates      *prometheus.CounterVec
	AgentRequests      prometheus.Counter
	SinkFailures       *prometheus.CounterVec
}

func New() *Registry {
	m := &Registry{
		reg: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tixmarket_http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tixmarket_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"method", "route"},
		),

		ProjectionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tixmarket_projection_duration_seconds",
				Help:    "Time spent shaping catalog responses",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"kind", "format"},
		),

		CatalogListings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tixmarket_catalog_listings",
				Help: "Generated listings per event",
			},
			[]string{"event_id"},
		),

		ConfigUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tixmarket_config_updates_total",
				Help: "Configuration replacements by source",
			},
			[]string{"source"},
		),

		AgentRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tixmarket_agent_requests_total",
				Help: "Requests classified as automated agents",
			},
		),

		SinkFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tixmarket_request_log_sink_failures_total",
				Help: "Failed request-log deliveries by sink",
			},
			[]string{"sink"},
		),
	}

	m.reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ProjectionDuration,
		m.CatalogListings,
		m.ConfigUpdates,
		m.AgentRequests,
		m.SinkFailures,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Gatherer exposes the underlying registry, mostly for tests.
func (m *Registry) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.reg
}

// Handler serves the registry in the Prometheus text format.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{})
}

// Middleware counts and times every request by its route template.
func (m *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Timer observes elapsed time into one histogram series.
type Timer struct {
	observer prometheus.Observer
	start    time.Time
}

func (m *Registry) StartProjectionTimer(kind, format string) *Timer {
	if m == nil {
		return nil
	}
	return &Timer{observer: m.ProjectionDuration.WithLabelValues(kind, format), start: time.Now()}
}

func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.observer.Observe(time.Since(t.start).Seconds())
}

func (m *Registry) SetCatalogListings(eventID, count int) {
	if m == nil {
		return
	}
	m.CatalogListings.WithLabelValues(strconv.Itoa(eventID)).Set(float64(count))
}

func (m *Registry) RecordConfigUpdate(source string) {
	if m == nil {
		return
	}
	m.ConfigUpdates.WithLabelValues(source).Inc()
}

func (m *Registry) RecordAgentRequest() {
	if m == nil {
		return
	}
	m.AgentRequests.Inc()
}

func (m *Registry) RecordSinkFailure(sink string) {
	if m == nil {
		return
	}
	m.SinkFailures.WithLabelValues(sink).Inc()
}
