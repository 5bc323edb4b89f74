// Package metrics declares the Prometheus instruments for the transfer and
// reconciliation engine. All collectors are registered on the default
// registry via promauto and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MirrorFailures counts legacy-mirror writes that were caught and discarded.
// The mirror is best effort; this counter is the only place those failures
// remain visible.
var MirrorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "retailops",
	Subsystem: "mirror",
	Name:      "failures_total",
	Help:      "Legacy mirror writes that failed and were discarded.",
}, []string{"operation"})

// CodeCollisionRetries counts transfer-code regenerations after a unique
// constraint collision at the storage layer.
var CodeCollisionRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "retailops",
	Subsystem: "transfer",
	Name:      "code_collision_retries_total",
	Help:      "Transfer code regenerations caused by a duplicate-code collision.",
})

// TransfersConfirmed counts transfers that reached the Confirmed state and
// had their ledger increments applied.
var TransfersConfirmed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "retailops",
	Subsystem: "transfer",
	Name:      "confirmed_total",
	Help:      "Transfer transactions confirmed (destination ledger credited).",
})

// ExchangesProcessed counts exchange records created.
var ExchangesProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "retailops",
	Subsystem: "exchange",
	Name:      "processed_total",
	Help:      "Exchange records created (returns quarantined, issues deducted).",
})
