package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

const namespace = "planner"

// Metrics holds the planner's collectors on a private registry so that tests
// and multiple sessions never collide on the global one
type Metrics struct {
	registry          *prometheus.Registry
	reservationOps    *prometheus.CounterVec
	reservedQuantity  *prometheus.GaugeVec
	operationDuration *prometheus.HistogramVec
}

// New creates and registers the planner collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reservationOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_operations_total",
			Help:      "Successful reservation ledger updates by operation.",
		}, []string{"operation"}),
		reservedQuantity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reserved_quantity",
			Help:      "Quantity currently reserved in the ledger per material.",
		}, []string{"material"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of planning operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		m.reservationOps,
		m.reservedQuantity,
		m.operationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordReservation counts a ledger update and republishes the reserved gauge.
// Materials absent from reserved are reset so released materials read zero.
func (m *Metrics) RecordReservation(operation string, reserved entities.Quantities, elapsed time.Duration) {
	m.reservationOps.WithLabelValues(operation).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())

	m.reservedQuantity.Reset()
	for material, qty := range reserved {
		m.reservedQuantity.WithLabelValues(string(material)).Set(qty)
	}
}

// ObserveOperation records the duration of a read operation (balance, schedule, ...)
func (m *Metrics) ObserveOperation(operation string, elapsed time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
