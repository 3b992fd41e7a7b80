package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordReconcile("PARTIAL", "top_up", 20*time.Millisecond)
	c.RecordScheduled(3)
	c.RecordCancelled(2)
	c.RecordCollaboratorFailure("cancel")
	c.RecordDailyPick()
	c.RecordCycleReset()
	c.RecordDelivery("daily", true)
	c.RecordDelivery("daily", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.reconciles.WithLabelValues("PARTIAL", "top_up")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.scheduled))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cancelled))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.collaboratorFails.WithLabelValues("cancel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dailyPicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cycleResets))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deliveries.WithLabelValues("daily", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deliveries.WithLabelValues("daily", "failure")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordScheduled(1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "advice_notifications_scheduled_total 1")
}
