package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsService_HandlerServesPrometheusFormat(t *testing.T) {
	m := NewMetricsService()
	m.ObserveGenerate("success", false, 10*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "generate_total")
}

func TestMetricsService_NilReceiverIsSafe(t *testing.T) {
	var m *MetricsService
	require.NotPanics(t, func() {
		m.ObserveGenerate("success", true, time.Millisecond)
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 503, rec.Code)
}

func TestMetricsService_CacheHitRatioTracksObservations(t *testing.T) {
	m := NewMetricsService()
	m.ObserveGenerate("success", true, time.Millisecond)
	m.ObserveGenerate("success", false, time.Millisecond)
	m.ObserveGenerate("success", true, time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "cache_hit_ratio")
	assert.Contains(t, rec.Body.String(), "cache_hit_ratio 0.6666666666666666")
}
