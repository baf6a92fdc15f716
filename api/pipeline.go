// File: api/pipeline.go
// Package api defines the contracts between the offload core and its host.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The host owns the request lifecycle and the event loop; the offload core
// only sees requests through these interfaces. All Host methods are called
// on the event-loop goroutine.

package api

// StageStatus is the outcome of a suspendable pipeline stage.
type StageStatus int

const (
	// StageContinue tells the host to proceed with the next stage.
	StageContinue StageStatus = iota
	// StageSuspended tells the host the request is parked while async
	// work is in flight; the core will re-enter the pipeline later.
	StageSuspended
	// StageFail tells the host to fail the request with an internal error.
	StageFail
)

// String returns a human-readable stage status name.
func (s StageStatus) String() string {
	switch s {
	case StageContinue:
		return "CONTINUE"
	case StageSuspended:
		return "SUSPENDED"
	case StageFail:
		return "FAIL"
	default:
		return "INVALID"
	}
}

// Request is the host's per-request object. The core treats it as an opaque
// identity; all request state the core needs lives in its own context store.
type Request interface {
	// ID returns a process-unique request identifier, stable for the
	// request's lifetime.
	ID() uint64
}

// StageHandler is installed at the host's suspendable pipeline stage.
// The host invokes it on first entry and again after each resumption,
// always on the event-loop goroutine.
type StageHandler func(req Request) (StageStatus, error)

// Host is the set of pipeline operations the offload core consumes.
type Host interface {
	// RegisterSuspendableStage installs the handler the host calls at its
	// suspendable stage.
	RegisterSuspendableStage(h StageHandler)

	// IncrementOutstandingAsync records one pending async operation for
	// the request, keeping it alive while work is in flight.
	IncrementOutstandingAsync(req Request)

	// DecrementOutstandingAsync reverses one increment and clears the
	// request's pending flag when the count reaches zero.
	DecrementOutstandingAsync(req Request)

	// ReenterPipeline resumes pipeline execution from the suspension
	// point. Event-loop goroutine only.
	ReenterPipeline(req Request)
}

// Waker schedules a callback onto the event-loop goroutine. Safe to call
// from any goroutine; this is the only cross-thread entry into the loop.
type Waker interface {
	// WakeEventLoop enqueues fn(payload) for execution on the event-loop
	// goroutine and wakes the loop's wait. Returns false if the loop is
	// stopped or its inbox is full, in which case fn will never run.
	WakeEventLoop(fn func(payload any), payload any) bool

	// WakeEventLoopBlocking is WakeEventLoop for callers that must not
	// lose the callback: it waits for inbox space rather than rejecting.
	// The completion path uses it so a loaded inbox delays a resumption
	// instead of dropping it. Returns false only when the loop is
	// stopped. Must not be called from the event-loop goroutine.
	WakeEventLoopBlocking(fn func(payload any), payload any) bool
}
