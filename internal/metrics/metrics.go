// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortener_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortener_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	URLsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_urls_created_total",
			Help: "Total number of short URLs created",
		},
	)

	RedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_redirects_total",
			Help: "Total number of resolved short URLs",
		},
	)

	// IDCollisionsTotal counts generated identifiers that were already taken.
	IDCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_id_collisions_total",
			Help: "Total number of generated identifiers that collided with a stored one",
		},
	)

	// GenerationExhaustedTotal should stay at zero; any increase means the
	// identifier space is close to full.
	GenerationExhaustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_id_generation_exhausted_total",
			Help: "Total number of create calls that ran out of identifier attempts",
		},
	)

	MappingsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortener_mappings",
			Help: "Number of stored mappings",
		},
	)
)

// RecordURLCreated counts a new mapping. Mappings are never removed, so the
// gauge only moves up.
func RecordURLCreated() {
	URLsCreatedTotal.Inc()
	MappingsGauge.Inc()
}

func RecordRedirect() {
	RedirectsTotal.Inc()
}

func RecordCollision() {
	IDCollisionsTotal.Inc()
}

func RecordGenerationExhausted() {
	GenerationExhaustedTotal.Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request count and latency labelled by the chi route
// pattern, so identifiers do not blow up label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(rec.status)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}
