package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(WithRegistry(prometheus.NewRegistry()))
}

func TestNewManager_Options(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(
		WithNamespace("test"),
		WithSubsystem("unit"),
		WithHistogramBuckets([]float64{1, 2}),
		WithRegistry(registry),
	)

	assert.Equal(t, "test", m.namespace)
	assert.Equal(t, "unit", m.subsystem)
	assert.Equal(t, []float64{1, 2}, m.histogramBuckets)
	assert.Same(t, registry, m.Registry())
	assert.False(t, m.runtimeCollectors)
}

func gatheredNames(t *testing.T, registry *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestNewManager_RuntimeCollectorsOnOwnRegistry(t *testing.T) {
	m := NewManager()
	require.NotNil(t, m.Registry())
	assert.True(t, gatheredNames(t, m.Registry())["go_goroutines"])

	supplied := newTestManager()
	assert.False(t, gatheredNames(t, supplied.Registry())["go_goroutines"])
}

func TestManager_RecordMutation(t *testing.T) {
	m := newTestManager()

	m.RecordMutation("create", "ok")
	m.RecordMutation("create", "ok")
	m.RecordMutation("delete", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.songMutations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.songMutations.WithLabelValues("delete", "not_found")))
}

func TestManager_SongsAndStats(t *testing.T) {
	m := newTestManager()

	m.SetSongsTotal(42)
	m.RecordStatsRequest("summary")

	assert.Equal(t, 42.0, testutil.ToFloat64(m.songsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statsRequests.WithLabelValues("summary")))
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.RecordMutation("create", "ok")
		m.SetSongsTotal(1)
		m.RecordStatsRequest("summary")
		m.RecordHTTPRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
	})
	assert.Nil(t, m.Registry())
}

func TestManager_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/songs/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/songs/abc", nil))
	require.Equal(t, http.StatusNoContent, recorder.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/songs/:id", http.MethodGet, "204")))

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "songcatalog_api_http_requests_total"))
}
