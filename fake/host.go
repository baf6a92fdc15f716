// File: fake/host.go
// Package fake provides test doubles for the host pipeline.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Host is a minimal event-driven pipeline: one suspendable stage, an
// outstanding-async counter, and re-entry from the suspension point. All
// pipeline methods run on the event-loop goroutine; tests drive requests in
// through Serve, which posts the first stage entry via the waker.

package fake

import (
	"sync/atomic"

	"github.com/momentics/hioload-offload/api"
)

// Request is a fake host request carrying just enough state for the
// pipeline contract.
type Request struct {
	id uint64

	// Pending mirrors the host's async-pending flag. Loop goroutine only.
	Pending bool

	// Status and Err record the terminal stage outcome.
	Status api.StageStatus
	Err    error

	// Done closes when the request leaves the pipeline.
	Done chan struct{}
}

// NewRequest creates a request with the given identity.
func NewRequest(id uint64) *Request {
	return &Request{id: id, Done: make(chan struct{})}
}

// ID implements api.Request.
func (r *Request) ID() uint64 {
	return r.id
}

// Ensure compile-time interface compliance.
var (
	_ api.Request = (*Request)(nil)
	_ api.Host    = (*Host)(nil)
)

// Host implements api.Host over an in-memory pipeline.
type Host struct {
	handler api.StageHandler

	outstanding int64
	incs        int64
	decs        int64

	// inflight detects concurrent stage execution, which would mean the
	// single-threaded loop contract was broken.
	inflight int32
	raced    int32

	// OnFinish, when set, fires on the loop goroutine as a request
	// reaches a terminal status.
	OnFinish func(req *Request)
}

// NewHost creates an empty fake host.
func NewHost() *Host {
	return &Host{}
}

// RegisterSuspendableStage implements api.Host.
func (h *Host) RegisterSuspendableStage(fn api.StageHandler) {
	h.handler = fn
}

// IncrementOutstandingAsync implements api.Host.
func (h *Host) IncrementOutstandingAsync(req api.Request) {
	atomic.AddInt64(&h.incs, 1)
	atomic.AddInt64(&h.outstanding, 1)
	if r, ok := req.(*Request); ok {
		r.Pending = true
	}
}

// DecrementOutstandingAsync implements api.Host.
func (h *Host) DecrementOutstandingAsync(req api.Request) {
	atomic.AddInt64(&h.decs, 1)
	atomic.AddInt64(&h.outstanding, -1)
	if r, ok := req.(*Request); ok {
		r.Pending = false
	}
}

// ReenterPipeline implements api.Host: resume from the suspension point.
func (h *Host) ReenterPipeline(req api.Request) {
	h.RunStage(req)
}

// RunStage executes the suspendable stage once. Loop goroutine only.
func (h *Host) RunStage(req api.Request) {
	if atomic.AddInt32(&h.inflight, 1) != 1 {
		atomic.StoreInt32(&h.raced, 1)
	}
	defer atomic.AddInt32(&h.inflight, -1)

	status, err := h.handler(req)
	if status == api.StageSuspended {
		return
	}
	if r, ok := req.(*Request); ok {
		r.Status = status
		r.Err = err
		if h.OnFinish != nil {
			h.OnFinish(r)
		}
		close(r.Done)
	}
}

// Serve posts the request's first stage entry onto the loop.
func (h *Host) Serve(w api.Waker, req *Request) bool {
	return w.WakeEventLoop(h.serve, req)
}

func (h *Host) serve(payload any) {
	h.RunStage(payload.(api.Request))
}

// Incs returns the total outstanding-async increments.
func (h *Host) Incs() int64 { return atomic.LoadInt64(&h.incs) }

// Decs returns the total outstanding-async decrements.
func (h *Host) Decs() int64 { return atomic.LoadInt64(&h.decs) }

// Outstanding returns the current outstanding-async count.
func (h *Host) Outstanding() int64 { return atomic.LoadInt64(&h.outstanding) }

// Raced reports whether stage executions ever overlapped.
func (h *Host) Raced() bool { return atomic.LoadInt32(&h.raced) == 1 }
