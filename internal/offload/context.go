// File: internal/offload/context.go
// Package offload
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-request context bridging the suspend and resume halves of processing.

package offload

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/hioload-offload/api"
)

// State is the request context lifecycle state.
type State int32

const (
	// StateInit: context created, task not yet picked up by a worker.
	StateInit State = iota
	// StateProcessing: a worker has started the task body.
	StateProcessing
	// StateDone: output populated, completion signaled.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateProcessing:
		return "PROCESSING"
	case StateDone:
		return "DONE"
	default:
		return "INVALID"
	}
}

// Output holds the result fields produced by the worker. Undefined before
// StateDone.
type Output struct {
	// DurationMS is the work duration the task computed, in milliseconds.
	DurationMS int64
}

// RequestContext is the per-request state surviving across suspend/resume.
// One suspend/resume cycle per context; there is no way back from DONE.
type RequestContext struct {
	state  int32
	output Output
	req    api.Request

	// resumed is touched on the event-loop goroutine only.
	resumed bool
}

func newRequestContext(req api.Request) *RequestContext {
	return &RequestContext{req: req}
}

// State returns the current lifecycle state.
func (c *RequestContext) State() State {
	return State(atomic.LoadInt32(&c.state))
}

// Request returns the owning request. Non-owning back-reference; the
// context's lifetime is bound to the request's, not the task's.
func (c *RequestContext) Request() api.Request {
	return c.req
}

// Output returns the worker's result fields. Valid only once State is DONE;
// the wakeup handoff orders the worker's writes before the loop's read.
func (c *RequestContext) Output() Output {
	return c.output
}

// advance moves the state machine forward. Transitions are CAS-guarded:
// any skipped or repeated transition is a defect, not a runtime condition.
func (c *RequestContext) advance(from, to State) {
	if !atomic.CompareAndSwapInt32(&c.state, int32(from), int32(to)) {
		panic(fmt.Sprintf("offload: illegal context transition %s -> %s (current %s)",
			from, to, c.State()))
	}
}

// setOutput records the task result. Worker goroutine, before DONE.
func (c *RequestContext) setOutput(out Output) {
	c.output = out
}

// markResumed enforces exactly-once resumption. A second call means a
// double-fired completion and panics loudly.
func (c *RequestContext) markResumed() {
	if c.resumed {
		panic(fmt.Sprintf("offload: request %d resumed twice", c.req.ID()))
	}
	c.resumed = true
}
