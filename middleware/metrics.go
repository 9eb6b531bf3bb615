package middleware

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Namespace for the metrics (default: "relay")
	Namespace string
	// Buckets for the request duration histogram (default: prometheus.DefBuckets)
	Buckets []float64
	// Registerer to register collectors with (default: prometheus.DefaultRegisterer)
	Registerer prometheus.Registerer
}

// Metrics creates a Prometheus metrics middleware recording request counts,
// durations, and in-flight requests. Routes are labeled by their
// registration pattern to bound cardinality; unmatched requests are labeled
// "unmatched".
func Metrics(cfg MetricsConfig) router.Middleware {
	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	factory := promauto.With(cfg.Registerer)

	requestsTotal := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	requestDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   cfg.Buckets,
		},
		[]string{"method", "route"},
	)
	inFlight := factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		route := ctx.RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request().Method

		inFlight.Inc()
		start := time.Now()

		err := next()

		inFlight.Dec()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		// Errors are rendered above this middleware; use the taxonomy status
		// when the response has not been written yet.
		status := ctx.StatusCode()
		if status == 0 && err != nil {
			status = httperr.From(err).Status
		}
		requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()

		return err
	}
}
