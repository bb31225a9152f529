// Package metrics defines the Prometheus metrics recorded by the calculator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "bigcalc"

// Metrics holds all Prometheus metrics for the calculator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	OperationsTotal    *prometheus.CounterVec
	ErrorsTotal        *prometheus.CounterVec
	ResultDigits       prometheus.Histogram
	ExpressionsTotal   prometheus.Counter
	EvaluationsSeconds prometheus.Histogram
}

// New creates a new Metrics instance with all metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of arithmetic operations applied",
			},
			[]string{"op"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of failed operations",
			},
			[]string{"op"},
		),
		ResultDigits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "result_digits",
				Help:      "Number of coefficient digits in operation results",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		ExpressionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "expressions_total",
				Help:      "Total number of expressions evaluated",
			},
		),
		EvaluationsSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "evaluation_seconds",
				Help:      "Expression evaluation latency in seconds",
				Buckets:   []float64{.00001, .0001, .001, .01, .1, 1, 10},
			},
		),
	}
}

// ObserveOperation records a successful operation and the size of its result.
func (m *Metrics) ObserveOperation(op string, digits int) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(op).Inc()
	m.ResultDigits.Observe(float64(digits))
}

// ObserveError records a failed operation.
func (m *Metrics) ObserveError(op string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(op).Inc()
}

// ObserveExpression records a completed expression and its latency.
func (m *Metrics) ObserveExpression(seconds float64) {
	if m == nil {
		return
	}
	m.ExpressionsTotal.Inc()
	m.EvaluationsSeconds.Observe(seconds)
}
