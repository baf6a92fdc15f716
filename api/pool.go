// File: api/pool.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker pool contract: fixed worker count, bounded FIFO queue,
// non-blocking submission.

package api

// WorkerPool executes task bodies outside the event loop.
type WorkerPool interface {
	// Submit enqueues a task. It never blocks: when the queue is at its
	// bound or the pool is closed the task is rejected with an error.
	Submit(t *Task) error

	// NumWorkers returns the fixed worker count.
	NumWorkers() int

	// QueueLen returns the number of tasks currently queued.
	QueueLen() int

	// QueueCap returns the queue bound.
	QueueCap() int

	// Stats returns basic pool counters.
	Stats() map[string]int64

	// Close stops accepting tasks, lets queued tasks drain, and waits
	// for workers to exit.
	Close()
}
