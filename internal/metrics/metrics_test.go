package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/events", 200, 42, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/events", 200, 10, time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/events", 401, 10, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/events", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/events", "401")))
}

func TestMetrics_InFlight(t *testing.T) {
	m := New()

	done := m.InFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))
}

func TestMetrics_AuthFailure(t *testing.T) {
	m := New()

	m.AuthFailure("expired")
	m.AuthFailure("expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authFailures.WithLabelValues("expired")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/events", 200, 1, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eventopia_http_requests_total{method="GET",route="/events",status="200"} 1`)
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.AuthFailure("missing")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.authFailures.WithLabelValues("missing")))
}
