package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK          = "ok"
	ResultLookupError = "lookup_error"
)

// Metrics concentra os coletores Prometheus da API.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	lookups         *prometheus.CounterVec
	slots           prometheus.Histogram
	cacheResults    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_lookups_total",
			Help: "Availability computations per barber, by result",
		}, []string{"result"}),
		slots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "availability_slots",
			Help:    "Number of free slots returned per barber and date",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 16, 24, 32, 48},
		}),
		cacheResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_cache_total",
			Help: "Schedule cache lookups, by result",
		}, []string{"result"}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.lookups,
		m.slots,
		m.cacheResults,
		collectors.NewGoCollector(),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware usa a rota registrada (FullPath) como label para não
// explodir a cardinalidade com slugs e ids.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveAvailability(result string, slots int) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.slots.Observe(float64(slots))
	}
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheResults.WithLabelValues("hit").Inc()
		return
	}
	m.cacheResults.WithLabelValues("miss").Inc()
}

func (m *Metrics) AvailabilityLookups() *prometheus.CounterVec {
	return m.lookups
}
