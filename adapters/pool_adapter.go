// File: adapters/pool_adapter.go
// Package adapters provides glue between internal concurrency and api contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PoolAdapter implements api.WorkerPool over the internal pool, translating
// rejections into structured errors and feeding the Prometheus collectors.

package adapters

import (
	"github.com/momentics/hioload-offload/api"
	"github.com/momentics/hioload-offload/control"
	"github.com/momentics/hioload-offload/internal/concurrency"
)

// PoolAdapter wraps an internal concurrency.Pool to satisfy api.WorkerPool.
type PoolAdapter struct {
	pool    *concurrency.Pool
	metrics *control.PoolMetrics
}

// NewPoolAdapter constructs a pool with the given worker count and queue
// bound. metrics may be nil when metrics are disabled.
func NewPoolAdapter(workers, queueCapacity int, metrics *control.PoolMetrics) (api.WorkerPool, error) {
	p, err := concurrency.NewPool(workers, queueCapacity)
	if err != nil {
		return nil, api.NewError(api.ErrCodeConfig, err.Error()).
			WithContext("workers", workers).
			WithContext("queue_capacity", queueCapacity)
	}
	return &PoolAdapter{pool: p, metrics: metrics}, nil
}

// Submit dispatches a task to the pool, recording accept/reject metrics.
func (a *PoolAdapter) Submit(t *api.Task) error {
	if a.metrics != nil && t != nil {
		orig := t.Done
		t.Done = func() {
			a.metrics.TasksCompleted.Inc()
			a.metrics.QueueDepth.Set(float64(a.pool.QueueLen()))
			if orig != nil {
				orig()
			}
		}
	}
	err := a.pool.Submit(t)
	switch err {
	case nil:
		if a.metrics != nil {
			a.metrics.TasksSubmitted.Inc()
			a.metrics.QueueDepth.Set(float64(a.pool.QueueLen()))
		}
		return nil
	case concurrency.ErrQueueFull:
		if a.metrics != nil {
			a.metrics.TasksRejected.Inc()
		}
		return api.NewError(api.ErrCodeResourceExhausted, api.ErrQueueFull.Error()).
			WithContext("queue_capacity", a.pool.QueueCap())
	case concurrency.ErrPoolClosed:
		return api.NewError(api.ErrCodeConfig, err.Error())
	default:
		return api.NewError(api.ErrCodeInternal, err.Error())
	}
}

// NumWorkers returns the fixed worker count.
func (a *PoolAdapter) NumWorkers() int {
	return a.pool.NumWorkers()
}

// QueueLen returns the number of queued tasks.
func (a *PoolAdapter) QueueLen() int {
	return a.pool.QueueLen()
}

// QueueCap returns the queue bound.
func (a *PoolAdapter) QueueCap() int {
	return a.pool.QueueCap()
}

// Stats returns the underlying pool counters.
func (a *PoolAdapter) Stats() map[string]int64 {
	return a.pool.Stats()
}

// Close shuts the pool down and waits for workers to exit.
func (a *PoolAdapter) Close() {
	a.pool.Close()
}
