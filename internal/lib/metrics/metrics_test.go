package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("login", time.Now(), nil)
	m.ObserveOperation("login", time.Now(), errors.New("boom"))
	m.ObserveOperation("login", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("login", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("login", OutcomeError)))

	count, err := testutil.GatherAndCount(reg, "graphql_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_ObserveFoodProvider(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFoodProvider(nil)
	m.ObserveFoodProvider(errors.New("timeout"))
	m.ObserveFoodProvider(errors.New("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.foodProvider.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.foodProvider.WithLabelValues(OutcomeError)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("x", time.Now(), nil)
		m.ObserveFoodProvider(nil)
	})
}
