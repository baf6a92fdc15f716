// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "errors"

var (
	// ErrPoolClosed indicates the worker pool has been shut down
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrQueueFull indicates the bounded task queue is at capacity
	ErrQueueFull = errors.New("task queue is full")

	// ErrInvalidWorkerCount indicates invalid worker count configuration
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrInvalidQueueCapacity indicates invalid queue capacity configuration
	ErrInvalidQueueCapacity = errors.New("invalid queue capacity")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("nil task")
)
