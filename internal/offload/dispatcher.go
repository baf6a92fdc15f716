// File: internal/offload/dispatcher.go
// Package offload
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher runs on the event-loop goroutine. Suspend is the single point
// where a request's pipeline may block-by-proxy: the blocking work moves to
// the pool and the request is parked until the completion path re-enters it.

package offload

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/momentics/hioload-offload/api"
)

// Dispatcher binds the worker pool, the host pipeline, and the context store.
type Dispatcher struct {
	pool  api.WorkerPool
	host  api.Host
	waker api.Waker
	store *ContextStore

	randSource func() int64
	sleepStep  time.Duration
	onResume   func()

	suspends int64
	resumes  int64
}

// NewDispatcher constructs a dispatcher. pool may be nil when the host left
// the pool unconfigured; Suspend then fails requests with a config error.
func NewDispatcher(pool api.WorkerPool, host api.Host, waker api.Waker, store *ContextStore) *Dispatcher {
	return &Dispatcher{
		pool:       pool,
		host:       host,
		waker:      waker,
		store:      store,
		randSource: rand.Int63,
		sleepStep:  sleepStepMS * time.Millisecond,
	}
}

// SetRandSource replaces the task input source. Useful for deterministic
// embeddings; defaults to math/rand.
func (d *Dispatcher) SetRandSource(fn func() int64) {
	if fn != nil {
		d.randSource = fn
	}
}

// SetSleepStep rescales the simulated work without changing the reported
// duration.
func (d *Dispatcher) SetSleepStep(step time.Duration) {
	if step > 0 {
		d.sleepStep = step
	}
}

// SetResumeHook installs a callback fired on each resumption, on the
// event-loop goroutine. Used for metric wiring.
func (d *Dispatcher) SetResumeHook(fn func()) {
	d.onResume = fn
}

// Suspend is the suspendable stage handler. First entry creates the context
// and parks the request; the entry after resumption observes DONE and
// continues. Event-loop goroutine only.
func (d *Dispatcher) Suspend(req api.Request) (api.StageStatus, error) {
	if ctx, ok := d.store.Get(req.ID()); ok {
		// re-entry happens only via the resume callback, so anything but
		// DONE here means the state machine was bypassed
		if st := ctx.State(); st != StateDone {
			return api.StageFail, api.NewError(api.ErrCodeInvariant,
				fmt.Sprintf("stage re-entered with context in state %s", st)).
				WithContext("request", req.ID())
		}
		return api.StageContinue, nil
	}

	if d.pool == nil {
		return api.StageFail, api.NewError(api.ErrCodeConfig,
			api.ErrPoolUnavailable.Error()).WithContext("request", req.ID())
	}

	ctx := newRequestContext(req)
	d.store.Set(req.ID(), ctx)

	task := newSleepTask(ctx, d.randSource(), d.sleepStep, func() {
		d.notifyCompletion(ctx)
	})
	if err := d.pool.Submit(task); err != nil {
		// fail clean: no task ever started, so the context must not
		// survive to a later entry
		d.store.Delete(req.ID())
		return api.StageFail, errors.Wrap(err, "offload: submit task")
	}

	d.host.IncrementOutstandingAsync(req)
	atomic.AddInt64(&d.suspends, 1)
	return api.StageSuspended, nil
}

// Context exposes the stored context for a request, if any.
func (d *Dispatcher) Context(req api.Request) (*RequestContext, bool) {
	return d.store.Get(req.ID())
}

// Release drops a request's context once the host is done with it.
func (d *Dispatcher) Release(req api.Request) {
	d.store.Delete(req.ID())
}

// Stats returns dispatcher counters.
func (d *Dispatcher) Stats() map[string]int64 {
	return map[string]int64{
		"suspends":      atomic.LoadInt64(&d.suspends),
		"resumes":       atomic.LoadInt64(&d.resumes),
		"live_contexts": int64(d.store.Len()),
	}
}
