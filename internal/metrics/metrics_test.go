package metrics_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/trip"
	"logistics/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_ObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewLedger(reg)
	require.NoError(t, err)

	m.ObserveOperation("create", nil, time.Millisecond)
	m.ObserveOperation("advance_to_midpoint", trip.ErrNoActiveTrip, time.Millisecond)
	m.ObserveOperation("advance_to_midpoint", errors.New("boom"), time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "trip_ledger_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)

	outcomes := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "trip_ledger_operations_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			var op, outcome string
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "operation":
					op = label.GetValue()
				case "outcome":
					outcome = label.GetValue()
				}
			}
			outcomes[op+"/"+outcome] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"create/ok":                        1,
		"advance_to_midpoint/NoActiveTrip": 1,
		"advance_to_midpoint/Internal":     1,
	}, outcomes)
}

func TestLedger_Status(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewLedger(reg)
	require.NoError(t, err)

	m.SetStatus(trip.InTransit)
	count, err := testutil.GatherAndCount(reg, "trip_ledger_active_trip_status")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(2), gaugeValue(families, "trip_ledger_active_trip_status"))

	m.ClearStatus()
	families, err = reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(0), gaugeValue(families, "trip_ledger_active_trip_status"))
}

func TestNewLedger_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewLedger(reg)
	require.NoError(t, err)

	_, err = metrics.NewLedger(reg)
	require.NoError(t, err)
}

func gaugeValue(families []*dto.MetricFamily, name string) float64 {
	for _, family := range families {
		if family.GetName() == name && len(family.GetMetric()) > 0 {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return -1
}

func TestNewLedger_SharesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewLedger(reg)
	require.NoError(t, err)
	second, err := metrics.NewLedger(reg)
	require.NoError(t, err)

	second.SetStatus(trip.Delivered)
	first.ObserveOperation("create", nil, 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(3), gaugeValue(families, "trip_ledger_active_trip_status"))
}
