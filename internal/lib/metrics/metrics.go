// Package metrics описывает prometheus-метрики сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы операций.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics хранит счётчики и гистограммы GraphQL-операций и внешнего поиска продуктов.
type Metrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	foodProvider *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphql_operations_total",
			Help: "Number of GraphQL field resolutions by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphql_operation_duration_seconds",
			Help:    "Duration of GraphQL field resolutions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		foodProvider: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "food_provider_requests_total",
			Help: "Number of requests to the external food database by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.operations, m.duration, m.foodProvider)
	return m
}

// ObserveOperation учитывает одно выполнение операции.
func (m *Metrics) ObserveOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveFoodProvider учитывает один запрос к внешней базе продуктов.
func (m *Metrics) ObserveFoodProvider(err error) {
	if m == nil {
		return
	}
	m.foodProvider.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
