// Package metrics defines the Prometheus instruments of the engine. The
// jobs increment them after each pass; the HTTP adapter serves them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Set bundles the engine counters registered on one registry.
type Set struct {
	ConsignmentsCreated   prometheus.Counter
	OrdersRejected        prometheus.Counter
	ConsignmentsAssigned  prometheus.Counter
	ConsignmentsReclaimed prometheus.Counter
	StaleSamplesDropped   prometheus.Counter
}

// NewSet creates and registers the engine counters on the given registry.
func NewSet(registry prometheus.Registerer) *Set {
	s := &Set{
		ConsignmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consignments_created_total",
			Help: "Total number of consignments produced by order aggregation",
		}),
		OrdersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of orders rejected during aggregation",
		}),
		ConsignmentsAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consignments_assigned_total",
			Help: "Total number of consignments bound to a driver",
		}),
		ConsignmentsReclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "consignments_reclaimed_total",
			Help: "Total number of assignments reverted from unreachable drivers",
		}),
		StaleSamplesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stale_samples_dropped_total",
			Help: "Total number of out-of-order location samples dropped",
		}),
	}

	registry.MustRegister(
		s.ConsignmentsCreated,
		s.OrdersRejected,
		s.ConsignmentsAssigned,
		s.ConsignmentsReclaimed,
		s.StaleSamplesDropped,
	)

	return s
}
