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

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.ObserveHTTPRequest(http.MethodGet, "/api/v1/bookings", http.StatusOK, 20*time.Millisecond)
	r.ObserveHTTPRequest(http.MethodGet, "/api/v1/bookings", http.StatusOK, 30*time.Millisecond)
	r.BookingTransitioned("approved")
	r.ContainerReviewed("rejected")
	r.ClosureRun("ok", 3)
	r.ClosureRun("skipped", 0)

	assert.InDelta(t, 2, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/v1/bookings", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.bookingTransition.WithLabelValues("approved")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.containerReviews.WithLabelValues("rejected")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.closureRuns.WithLabelValues("skipped")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(r.bookingsClosed), 0)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.BookingTransitioned("closed")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cargomatch_booking_transitions_total{status="closed"} 1`)
}
