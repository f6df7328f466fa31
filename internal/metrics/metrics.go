// Package metrics exposes ledger activity to Prometheus.
package metrics

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/trip"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trip_ledger"

// outcomeOK labels operations that returned no error.
const outcomeOK = "ok"

// Ledger holds the collectors for one ledger process.
type Ledger struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	status     prometheus.Gauge
}

// NewLedger creates the collectors and registers them with reg. Passing
// prometheus.DefaultRegisterer exposes them on promhttp.Handler.
func NewLedger(reg prometheus.Registerer) (*Ledger, error) {
	m := &Ledger{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Ledger operations by name and outcome kind.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of ledger operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		status: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_trip_status",
				Help:      "Status of the active trip: 0 none, 1 Departed, 2 InTransit, 3 Delivered.",
			},
		),
	}

	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.status, err = register(reg, m.status); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing the collector already registered under
// the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// ObserveOperation records one finished ledger operation.
func (m *Ledger) ObserveOperation(operation string, err error, elapsed time.Duration) {
	outcome := outcomeOK
	if err != nil {
		outcome = string(trip.KindOf(err))
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetStatus publishes the status of the active trip.
func (m *Ledger) SetStatus(status trip.Status) {
	m.status.Set(float64(status))
}

// ClearStatus marks the slot as empty.
func (m *Ledger) ClearStatus() {
	m.status.Set(0)
}
