package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CheckIn("late")
		m.ObserveReport("daily", time.Now())
		m.FetchFailed("daily")
		m.Notification(nil)
	})
}

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CheckIn("late")
	m.CheckIn("late")
	m.CheckIn("checked_in")
	m.FetchFailed("daily")
	m.Notification(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkIns.WithLabelValues("late")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkIns.WithLabelValues("checked_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchFailures.WithLabelValues("daily")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("error")))

	m.RegisterPool(func() float64 { return 3 })

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "attendance_check_ins_total")
	assert.Contains(t, rec.Body.String(), "attendance_db_connections_acquired 3")
}
