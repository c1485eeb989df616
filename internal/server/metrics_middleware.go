package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_http_requests_total",
			Help: "Total number of HTTP requests by route, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	authFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habits_auth_failures_total",
			Help: "Requests rejected for a missing or wrong bearer token",
		},
	)

	completionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_completions_logged_total",
			Help: "Completion records written, by status",
		},
		[]string{"status"},
	)

	analyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_analytics_duration_seconds",
			Help:    "Time spent computing analytics, by kind",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"kind"},
	)

	habitsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "habits_habits",
			Help: "Number of habits by status",
		},
		[]string{"status"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware labels by chi route pattern so habit IDs don't
// explode label cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(endpoint, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(endpoint, r.Method, statusCode).Observe(duration)
	})
}

func updateHabitGauges(habits []habit.Habit) {
	counts := map[habit.Status]int{habit.Active: 0, habit.Paused: 0, habit.Archived: 0}
	for _, h := range habits {
		counts[h.Status]++
	}
	for status, n := range counts {
		habitsByStatus.WithLabelValues(string(status)).Set(float64(n))
	}
}
