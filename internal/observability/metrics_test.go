package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordLogin(LoginFailed)
	m.RecordLogin(LoginFailed)
	m.RecordLogin(LoginSucceeded)
	m.RecordGateRejection("rate_check", "RATE_LIMITED")
	m.RecordRequest("/api/auth/login", "POST", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues(LoginFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(LoginSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gateRejections.WithLabelValues("rate_check", "RATE_LIMITED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/auth/login", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(LoginLocked)
		m.RecordGateRejection("authorization", "UNAUTHORIZED")
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "NOT_FOUND")
	})
}

func TestMetricsHandlerExposesFamilies(t *testing.T) {
	m := NewMetrics()
	m.RecordLogin(LoginLocked)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `login_outcomes_total{outcome="locked"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
