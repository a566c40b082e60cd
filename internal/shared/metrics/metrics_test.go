package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.Reservation("created")
	m.Reservation("created")
	m.Reservation("cancelled")
	m.BillingCall("subscribe", errors.New("card declined"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillingCallsTotal.WithLabelValues("subscribe", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.Reservation("created")
		m.Review("created")
		m.Favorite("added")
		m.AccessDenied("not_owner")
		m.BillingCall("cancel", nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.Favorite("added")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `nagoyameshi_favorites_total{action="added"} 1`)
}
