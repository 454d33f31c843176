// Package monitoring exposes Prometheus metrics for kernel IPC objects.
package monitoring

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipeMetrics holds the pipe subsystem's Prometheus metrics.
type PipeMetrics struct {
	// PipesActive tracks pipes that exist right now.
	PipesActive prometheus.Gauge
	// PipesCreated counts every pipe ever created.
	PipesCreated prometheus.Counter
	// BytesTransferred counts bytes moved through pipes by direction.
	BytesTransferred *prometheus.CounterVec
	// WouldBlock counts non-blocking operations that made no progress.
	WouldBlock *prometheus.CounterVec
	// WaitAborts counts sleeps ended by cancellation or deadline.
	WaitAborts *prometheus.CounterVec
}

var (
	pipeMetrics *PipeMetrics
	pipeOnce    sync.Once
)

// Pipes returns the singleton pipe metrics collector. Metrics register
// with the default registry on first use.
func Pipes() *PipeMetrics {
	pipeOnce.Do(func() {
		pipeMetrics = &PipeMetrics{
			PipesActive: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "kernel_pipes_active",
					Help: "Number of pipes currently alive",
				},
			),
			PipesCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "kernel_pipes_created_total",
					Help: "Total number of pipes created",
				},
			),
			BytesTransferred: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "kernel_pipe_bytes_total",
					Help: "Bytes moved through pipes",
				},
				[]string{"direction"},
			),
			WouldBlock: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "kernel_pipe_would_block_total",
					Help: "Non-blocking pipe operations that could not progress",
				},
				[]string{"direction"},
			),
			WaitAborts: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "kernel_pipe_wait_aborts_total",
					Help: "Pipe sleeps ended by cancellation or deadline",
				},
				[]string{"reason"},
			),
		}
	})
	return pipeMetrics
}
