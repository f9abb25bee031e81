package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "schedule-test")

	m.IncReservation("created")
	m.IncReservation("created")
	m.IncConflict("already_reserved")
	m.AddSlotsWritten("insert", 4)
	m.AddSlotsWritten("delete", 0)
	m.ObserveHTTPRequest("GET", "/api/v1/providers/{providerId}/schedule", 200, 10*time.Millisecond)
	m.ObserveQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("schedule-test", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConflictsTotal.WithLabelValues("schedule-test", "already_reserved")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.SlotsWritten.WithLabelValues("schedule-test", "insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("schedule-test", "GET", "/api/v1/providers/{providerId}/schedule", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("schedule-test", "query")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservation("created")
		m.IncConflict("invalid_schedule")
		m.ObserveQuery("exec", time.Millisecond, nil)
		m.IncTransaction("commit")
	})
}
