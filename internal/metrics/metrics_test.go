package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("+", 3)
	m.ObserveOperation("+", 5)
	m.ObserveOperation("/", 20)
	m.ObserveError("/")
	m.ObserveExpression(0.001)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("+")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("/")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("/")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExpressionsTotal))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP bigcalc_expressions_total Total number of expressions evaluated
# TYPE bigcalc_expressions_total counter
bigcalc_expressions_total 1
`), "bigcalc_expressions_total")
	require.NoError(t, err)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("*", 1)
		m.ObserveError("*")
		m.ObserveExpression(1)
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
