// File: internal/concurrency/eventloop.go
// Package concurrency implements the single-goroutine event loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Loop drains posted callbacks in batches on one goroutine. Producers
// enqueue first and signal the wakeup second; the loop drains the inbox
// before waiting again, so a completion posted from a worker can never be
// lost between the empty check and the wait.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-offload/api"
)

// Ensure compile-time interface compliance.
var _ api.Waker = (*Loop)(nil)

type loopEvent struct {
	fn      func(payload any)
	payload any
}

// Loop is the event loop driving resume callbacks.
type Loop struct {
	inbox     *boundedQueue[loopEvent]
	wake      *wakeup
	batchSize int
	stopCh    chan struct{}
	done      chan struct{}
	running   int32
	stopping  int32
	processed int64
}

// NewLoop creates a loop with the given batch size and inbox capacity.
func NewLoop(batchSize, queueCapacity int) (*Loop, error) {
	if batchSize <= 0 {
		batchSize = 16
	}
	if queueCapacity <= 0 {
		queueCapacity = 1024
	}
	wake, err := newWakeup()
	if err != nil {
		return nil, err
	}
	return &Loop{
		inbox:     newBoundedQueue[loopEvent](queueCapacity),
		wake:      wake,
		batchSize: batchSize,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// WakeEventLoop implements api.Waker. Callable from any goroutine.
func (l *Loop) WakeEventLoop(fn func(payload any), payload any) bool {
	if fn == nil || atomic.LoadInt32(&l.stopping) == 1 {
		return false
	}
	if !l.inbox.TryEnqueue(loopEvent{fn: fn, payload: payload}) {
		return false
	}
	l.wake.Signal()
	return true
}

// WakeEventLoopBlocking implements api.Waker. It waits for inbox space
// instead of rejecting, so callers off the loop goroutine can rely on
// delivery; only a stopped loop refuses the callback. Never call it from
// the loop goroutine itself: with a full inbox that wait can never end.
func (l *Loop) WakeEventLoopBlocking(fn func(payload any), payload any) bool {
	if fn == nil || atomic.LoadInt32(&l.stopping) == 1 {
		return false
	}
	if !l.inbox.Enqueue(loopEvent{fn: fn, payload: payload}) {
		return false
	}
	l.wake.Signal()
	return true
}

// Run executes the loop on the calling goroutine until Stop. Only the first
// caller becomes the loop goroutine; later calls return immediately.
func (l *Loop) Run() {
	if !atomic.CompareAndSwapInt32(&l.running, 0, 1) {
		return
	}
	defer close(l.done)
	for {
		select {
		case <-l.stopCh:
			// drain callbacks already accepted so none are dropped
			l.drain()
			return
		default:
		}
		if l.processBatch() == 0 {
			l.wake.Wait()
		}
	}
}

// Stop rejects further posts, wakes the loop, and waits for it to exit.
func (l *Loop) Stop() {
	if !atomic.CompareAndSwapInt32(&l.stopping, 0, 1) {
		return
	}
	close(l.stopCh)
	l.inbox.Close()
	l.wake.Signal()
	if atomic.LoadInt32(&l.running) == 1 {
		<-l.done
	}
	// the loop goroutine has exited (or never ran); the fd is unreachable now
	l.wake.Close()
}

// Pending returns the number of callbacks waiting in the inbox.
func (l *Loop) Pending() int {
	return l.inbox.Len()
}

// Processed returns the total number of callbacks executed.
func (l *Loop) Processed() int64 {
	return atomic.LoadInt64(&l.processed)
}

func (l *Loop) processBatch() int {
	count := 0
	for i := 0; i < l.batchSize; i++ {
		ev, ok := l.inbox.TryDequeue()
		if !ok {
			break
		}
		ev.fn(ev.payload)
		count++
	}
	atomic.AddInt64(&l.processed, int64(count))
	return count
}

func (l *Loop) drain() {
	for {
		ev, ok := l.inbox.TryDequeue()
		if !ok {
			return
		}
		ev.fn(ev.payload)
		atomic.AddInt64(&l.processed, 1)
	}
}
