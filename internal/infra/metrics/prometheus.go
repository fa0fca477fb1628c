// Package metrics exposes business and HTTP metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"cargomatch/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cargomatch"

// Recorder implements service.MetricsRecorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	bookingTransition *prometheus.CounterVec
	containerReviews  *prometheus.CounterVec
	closureRuns       *prometheus.CounterVec
	bookingsClosed    prometheus.Counter
}

var _ service.MetricsRecorder = (*Recorder)(nil)

// NewRecorder builds and registers all collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bookingTransition: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_transitions_total",
				Help:      "Booking status changes by target status.",
			},
			[]string{"status"},
		),
		containerReviews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "container_reviews_total",
				Help:      "Admin container reviews by decision.",
			},
			[]string{"decision"},
		),
		closureRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_closure_runs_total",
				Help:      "Closure job runs by result.",
			},
			[]string{"result"},
		),
		bookingsClosed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_auto_closed_total",
				Help:      "Bookings closed by the closure job.",
			},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.bookingTransition,
		r.containerReviews,
		r.closureRuns,
		r.bookingsClosed,
	)

	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) BookingTransitioned(to string) {
	r.bookingTransition.WithLabelValues(to).Inc()
}

func (r *Recorder) ContainerReviewed(decision string) {
	r.containerReviews.WithLabelValues(decision).Inc()
}

func (r *Recorder) ClosureRun(result string, closed int) {
	r.closureRuns.WithLabelValues(result).Inc()
	if closed > 0 {
		r.bookingsClosed.Add(float64(closed))
	}
}
