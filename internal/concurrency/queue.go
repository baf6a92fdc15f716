// File: internal/concurrency/queue.go
// Package concurrency provides the bounded FIFO behind the worker pool and loop inbox.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// boundedQueue is MPMC, lock-based: producers on the event-loop goroutine
// use non-blocking enqueue, worker consumers park on the condition variable.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
)

// boundedQueue is a capacity-limited FIFO over an eapache ring deque.
type boundedQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    *queue.Queue
	capacity int
	closed   bool
}

// newBoundedQueue creates a queue holding at most capacity items.
func newBoundedQueue[T any](capacity int) *boundedQueue[T] {
	q := &boundedQueue[T]{
		items:    queue.New(),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// TryEnqueue appends v; returns false when the queue is full or closed.
func (q *boundedQueue[T]) TryEnqueue(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || q.items.Length() >= q.capacity {
		return false
	}
	q.items.Add(v)
	q.notEmpty.Signal()
	return true
}

// Enqueue appends v, blocking while the queue is at its bound.
// Returns false once the queue is closed.
func (q *boundedQueue[T]) Enqueue(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() >= q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}
	q.items.Add(v)
	q.notEmpty.Signal()
	return true
}

// Dequeue removes the head, blocking while the queue is empty and open.
// Returns ok=false once the queue is closed and drained.
func (q *boundedQueue[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}
	v := q.items.Remove().(T)
	q.notFull.Signal()
	return v, true
}

// TryDequeue removes the head without blocking; ok=false when empty.
func (q *boundedQueue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}
	v := q.items.Remove().(T)
	q.notFull.Signal()
	return v, true
}

// Close rejects further enqueues and releases blocked producers and
// consumers. Items already queued remain dequeueable.
func (q *boundedQueue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the current number of queued items.
func (q *boundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Cap returns the queue bound.
func (q *boundedQueue[T]) Cap() int {
	return q.capacity
}
