// File: api/task.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task is the unit handed from the dispatcher to the worker pool. Ownership
// transfers with it: dispatcher -> queue -> worker, which drops it after
// firing Done.

package api

// Task is a self-contained unit of blocking work. Input and output travel
// inside the closures; the pool never inspects either.
type Task struct {
	// Body performs the blocking work. It runs on exactly one pool worker
	// and may block for an arbitrary duration.
	Body func()

	// Done fires after Body returns, still on the worker goroutine. It
	// must be cheap and cross-thread safe; the offload core uses it to
	// hand the completion back to the event loop.
	Done func()
}
