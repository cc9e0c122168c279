package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	appMetrics.EmployeeOperations.WithLabelValues("create", metrics.OutcomeSuccess).Inc()

	assert.InDelta(t, 1.0,
		testutil.ToFloat64(appMetrics.EmployeeOperations.WithLabelValues("create", metrics.OutcomeSuccess)), 0)
	assert.InDelta(t, 0.0,
		testutil.ToFloat64(appMetrics.EmployeeOperations.WithLabelValues("update", metrics.OutcomeError)), 0)
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	require.Panics(t, func() {
		_ = metrics.NewMetrics(reg)
	})
}
