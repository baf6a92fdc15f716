// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics: a thread-safe map registry for snapshot-style stats and
// Prometheus collectors for the worker pool and resume path.

package control

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// PoolMetrics holds the Prometheus collectors for the offload pipeline.
type PoolMetrics struct {
	TasksSubmitted prometheus.Counter
	TasksCompleted prometheus.Counter
	TasksRejected  prometheus.Counter
	Resumes        prometheus.Counter
	QueueDepth     prometheus.Gauge
}

// NewPoolMetrics creates and registers the offload collectors on reg.
func NewPoolMetrics(reg prometheus.Registerer, namespace string) *PoolMetrics {
	m := &PoolMetrics{
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks accepted by the worker pool",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_completed_total",
			Help:      "Total number of task bodies run to completion",
		}),
		TasksRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_rejected_total",
			Help:      "Total number of tasks rejected by the bounded queue",
		}),
		Resumes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "resumes_total",
			Help:      "Total number of requests resumed on the event loop",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "queue_depth",
			Help:      "Current number of tasks waiting for a worker",
		}),
	}
	reg.MustRegister(
		m.TasksSubmitted,
		m.TasksCompleted,
		m.TasksRejected,
		m.Resumes,
		m.QueueDepth,
	)
	return m
}
