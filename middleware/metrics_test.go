package middleware_test

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/middleware"
)

// findMetric returns the samples gathered for the named metric family.
func findMetric(t *testing.T, reg *prometheus.Registry, name string) []*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()
		}
	}
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestMetricsRecordsRequests(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := router.New()
	r.Use(middleware.Metrics(middleware.MetricsConfig{Registerer: reg}))
	r.Get("/users/:id", func(ctx *router.Context) error {
		return ctx.String("ok")
	})

	get(r, "/users/1")
	get(r, "/users/2")

	counters := findMetric(t, reg, "relay_http_requests_total")
	require.Len(t, counters, 1)
	assert.Equal(t, float64(2), counters[0].GetCounter().GetValue())
	assert.Equal(t, "GET", labelValue(counters[0], "method"))
	assert.Equal(t, "/users/:id", labelValue(counters[0], "route"))
	assert.Equal(t, "200", labelValue(counters[0], "status"))

	durations := findMetric(t, reg, "relay_http_request_duration_seconds")
	require.Len(t, durations, 1)
	assert.Equal(t, uint64(2), durations[0].GetHistogram().GetSampleCount())
}

func TestMetricsLabelsErroredRequestsByTaxonomyStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := router.New()
	// The boundary sits outside the metrics middleware, so the error is
	// still unrendered when the counter is recorded.
	r.Use(middleware.ErrorBoundaryWithConfig(middleware.ErrorBoundaryConfig{Logger: discard()}))
	r.Use(middleware.Metrics(middleware.MetricsConfig{Registerer: reg}))
	r.Get("/fail", func(ctx *router.Context) error {
		return httperr.ErrConflict
	})

	get(r, "/fail")

	counters := findMetric(t, reg, "relay_http_requests_total")
	require.Len(t, counters, 1)
	assert.Equal(t, "409", labelValue(counters[0], "status"))
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := router.New()
	r.Use(middleware.Metrics(middleware.MetricsConfig{Registerer: reg}))
	r.Get("/known", func(ctx *router.Context) error { return ctx.NoContent() })

	w := get(r, "/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	counters := findMetric(t, reg, "relay_http_requests_total")
	require.Len(t, counters, 1)
	assert.Equal(t, "unmatched", labelValue(counters[0], "route"))
	assert.Equal(t, "404", labelValue(counters[0], "status"))
}

func TestMetricsCustomNamespace(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := router.New()
	r.Use(middleware.Metrics(middleware.MetricsConfig{
		Registerer: reg,
		Namespace:  "gateway",
	}))
	r.Get("/known", func(ctx *router.Context) error { return ctx.NoContent() })

	get(r, "/known")
	assert.NotNil(t, findMetric(t, reg, "gateway_http_requests_total"))
}
