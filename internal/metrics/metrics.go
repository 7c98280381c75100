package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal *prometheus.CounterVec
	chunkOpsTotal   *prometheus.CounterVec

	// Registration guard
	metricsOnce sync.Once
)

// Init initializes all Prometheus metrics.
// Safe to call more than once; registration happens on the first call.
func Init() {
	metricsOnce.Do(func() {
		operationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credvault_operations_total",
				Help: "Total number of vault operations by backend and outcome",
			},
			[]string{"backend", "op", "status"},
		)

		chunkOpsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credvault_chunk_operations_total",
				Help: "Total number of physical chunk entries written or deleted",
			},
			[]string{"op"},
		)
	})
}

// ObserveOp records one vault operation against a backend.
// No-op until Init has been called.
func ObserveOp(backend, op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ObserveOpStatus(backend, op, status)
}

// ObserveOpStatus records one vault operation with an explicit status, for
// outcomes that are neither success nor failure ("not_found").
// No-op until Init has been called.
func ObserveOpStatus(backend, op, status string) {
	if operationsTotal == nil {
		return
	}
	operationsTotal.WithLabelValues(backend, op, status).Inc()
}

// ObserveChunks records n physical chunk operations of the given kind.
// No-op until Init has been called.
func ObserveChunks(op string, n int) {
	if chunkOpsTotal == nil || n <= 0 {
		return
	}
	chunkOpsTotal.WithLabelValues(op).Add(float64(n))
}
