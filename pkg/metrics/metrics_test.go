package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordBookingOperation(t *testing.T) {
	m := NewWithRegistry("rooms", prometheus.NewRegistry())

	m.RecordBookingOperation("check_in", "success")
	m.RecordBookingOperation("check_in", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOperations.WithLabelValues("rooms", "check_in", "success")))
}

func TestMetrics_ObserveStoreCallCountsErrors(t *testing.T) {
	m := NewWithRegistry("rooms", prometheus.NewRegistry())

	m.ObserveStoreCall("sheets", "get", 10*time.Millisecond, nil)
	m.ObserveStoreCall("sheets", "get", 10*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCallErrors.WithLabelValues("rooms", "sheets", "get")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", "200", time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.ObserveStoreCall("sheets", "get", time.Millisecond, nil)
		m.RecordBookingOperation("create", "success")
	})
	assert.Equal(t, "", m.ServiceName())
}
