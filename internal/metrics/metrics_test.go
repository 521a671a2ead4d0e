package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAvailability(t *testing.T) {
	m := New()

	m.ObserveAvailability(ResultOK, 12)
	m.ObserveAvailability(ResultOK, 0)
	m.ObserveAvailability(ResultLookupError, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues(ResultLookupError)))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveAvailability(ResultOK, 3)
		m.ObserveCache(true)
	})
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/public/:slug/availability", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/public/shop-a/availability", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/public/shop-b/availability", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.requestTotal.WithLabelValues(http.MethodGet, "/api/public/:slug/availability", "200"),
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
