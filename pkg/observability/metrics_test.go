package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}

	m.Counter("test", 1)
	m.Gauge("test", 1.0)
	m.Timing("test", time.Second)
}

func TestInMemoryMetrics(t *testing.T) {
	t.Run("Counter", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("requests", 1)
		m.Counter("requests", 1)
		m.Counter("requests", 1)

		assert.Equal(t, int64(3), m.GetCounter("requests"))
	})

	t.Run("Counter with tags is order independent", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("callbacks", 1, T("phase", "midEvent"), T("event", "adjournCase"))
		m.Counter("callbacks", 1, T("event", "adjournCase"), T("phase", "midEvent"))

		assert.Equal(t, int64(2), m.GetCounter("callbacks", T("phase", "midEvent"), T("event", "adjournCase")))
	})

	t.Run("Gauge", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Gauge("lag", 2.5)
		m.Gauge("lag", 3.0)

		assert.Equal(t, 3.0, m.GetGauge("lag"))
	})

	t.Run("Timing", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Timing("latency", 100*time.Millisecond)
		m.Timing("latency", 200*time.Millisecond)

		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, m.GetTimings("latency"))
	})
}

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics("tribunal")

	m.Counter(MetricCallbacksHandled, 1, T("phase", "aboutToSubmit"))
	m.Counter(MetricCallbacksHandled, 2, T("phase", "aboutToSubmit"))
	m.Gauge("outbox.lag", 4)
	m.Timing(MetricOperationDuration, 50*time.Millisecond, T("operation", "dispatch"))

	count, err := testutil.GatherAndCount(m.Registry(), "tribunal_callback_handled_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tribunal_callback_handled_total{phase="aboutToSubmit"} 3`)
	assert.Contains(t, rec.Body.String(), "tribunal_outbox_lag 4")
	assert.Contains(t, rec.Body.String(), "tribunal_operation_duration_seconds_bucket")
}
