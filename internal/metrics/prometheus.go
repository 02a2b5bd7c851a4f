package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's Prometheus collectors. A nil *Manager is valid
// and records nothing, which is how metrics are disabled.
type Manager struct {
	namespace         string
	subsystem         string
	histogramBuckets  []float64
	registry          *prometheus.Registry
	runtimeCollectors bool

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Catalog Metrics
	songMutations *prometheus.CounterVec
	songsTotal    prometheus.Gauge
	statsRequests *prometheus.CounterVec
}

// NewManager creates a new metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:         "songcatalog",
		subsystem:         "api",
		histogramBuckets:  []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:          prometheus.NewRegistry(),
		runtimeCollectors: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.runtimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.songMutations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "song_mutations_total",
			Help:      "Total number of song create, update and delete attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.songsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "songs",
		Help:      "Number of songs in the last statistics snapshot",
	})

	m.statsRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stats_requests_total",
			Help:      "Total number of statistics computations by kind",
		},
		[]string{"kind"},
	)
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(float64(duration) / float64(time.Millisecond))
}

// RecordMutation counts a create, update or delete with its outcome
// ("ok", "invalid", "not_found", "error").
func (m *Manager) RecordMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.songMutations.WithLabelValues(operation, outcome).Inc()
}

// SetSongsTotal sets the catalog size gauge.
func (m *Manager) SetSongsTotal(count int) {
	if m == nil {
		return
	}
	m.songsTotal.Set(float64(count))
}

// RecordStatsRequest counts a statistics computation ("summary", "field", "groups").
func (m *Manager) RecordStatsRequest(kind string) {
	if m == nil {
		return
	}
	m.statsRequests.WithLabelValues(kind).Inc()
}

// Middleware records request counts and latency per route template.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(endpoint, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
