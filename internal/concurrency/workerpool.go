// File: internal/concurrency/workerpool.go
// Package concurrency implements the fixed-size worker pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool consumes api.Task units from a bounded FIFO. Submission never blocks:
// a full queue rejects the task so the event-loop goroutine is never stalled
// by the pool. Workers run the task body, then fire its completion hook,
// then drop the task.

package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-offload/api"
)

// Ensure compile-time interface compliance.
var _ api.WorkerPool = (*Pool)(nil)

// Pool is a fixed set of worker goroutines over one bounded queue.
type Pool struct {
	queue      *boundedQueue[*api.Task]
	numWorkers int
	closed     int32
	wg         sync.WaitGroup

	// statistics
	submitted int64
	completed int64
	rejected  int64
}

// NewPool creates and starts a pool with the given worker count and queue
// bound. Both must be positive; the worker count is fixed for the pool's
// lifetime.
func NewPool(workers, queueCapacity int) (*Pool, error) {
	if workers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	if queueCapacity <= 0 {
		return nil, ErrInvalidQueueCapacity
	}
	p := &Pool{
		queue:      newBoundedQueue[*api.Task](queueCapacity),
		numWorkers: workers,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p, nil
}

// Submit enqueues a task without blocking. Returns ErrPoolClosed after Close,
// ErrQueueFull when the queue is at its bound.
func (p *Pool) Submit(t *api.Task) error {
	if t == nil {
		return ErrNilTask
	}
	if atomic.LoadInt32(&p.closed) == 1 {
		return ErrPoolClosed
	}
	if !p.queue.TryEnqueue(t) {
		atomic.AddInt64(&p.rejected, 1)
		if atomic.LoadInt32(&p.closed) == 1 {
			return ErrPoolClosed
		}
		return ErrQueueFull
	}
	atomic.AddInt64(&p.submitted, 1)
	return nil
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// QueueLen returns the number of tasks waiting for a worker.
func (p *Pool) QueueLen() int {
	return p.queue.Len()
}

// QueueCap returns the queue bound.
func (p *Pool) QueueCap() int {
	return p.queue.Cap()
}

// Stats returns basic pool counters.
func (p *Pool) Stats() map[string]int64 {
	return map[string]int64{
		"submitted_tasks": atomic.LoadInt64(&p.submitted),
		"completed_tasks": atomic.LoadInt64(&p.completed),
		"rejected_tasks":  atomic.LoadInt64(&p.rejected),
		"queued_tasks":    int64(p.queue.Len()),
		"num_workers":     int64(p.numWorkers),
	}
}

// Close stops accepting tasks, drains the queue, and waits for workers.
func (p *Pool) Close() {
	if atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		p.queue.Close()
		p.wg.Wait()
	}
}

// run is the main loop for one worker goroutine.
func (p *Pool) run() {
	defer p.wg.Done()
	for {
		t, ok := p.queue.Dequeue()
		if !ok {
			return
		}
		p.execute(t)
	}
}

// execute runs the task body and fires its completion hook. The hook fires
// even if the body panics, so a defective body cannot leak a suspended
// request; the panic itself is swallowed to keep the worker alive.
func (p *Pool) execute(t *api.Task) {
	defer func() {
		recover()
		atomic.AddInt64(&p.completed, 1)
		if t.Done != nil {
			t.Done()
		}
	}()
	if t.Body != nil {
		t.Body()
	}
}
