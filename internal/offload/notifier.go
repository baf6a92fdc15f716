// File: internal/offload/notifier.go
// Package offload
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Completion path. notifyCompletion runs on the worker goroutine that
// finished the task; resume runs on the event-loop goroutine. The context
// reference crosses between them exactly once, through the waker.

package offload

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/momentics/hioload-offload/api"
)

// notifyCompletion hands the finished context back to the event loop.
// Safe to call concurrently with the loop processing other work. The
// blocking post parks this worker while the inbox is full; a completion
// may be delayed but never dropped while the loop is alive.
func (d *Dispatcher) notifyCompletion(ctx *RequestContext) {
	if !d.waker.WakeEventLoopBlocking(d.resume, ctx) {
		// loop gone mid-flight (shutdown); nothing left to resume into
		log.Printf("offload: dropping completion for request %d: %v",
			ctx.Request().ID(), api.ErrLoopStopped)
	}
}

// resume is the resume callback. Event-loop goroutine only. It tolerates
// exactly one invocation per context, with the context in DONE.
func (d *Dispatcher) resume(payload any) {
	ctx := payload.(*RequestContext)
	if st := ctx.State(); st != StateDone {
		panic(fmt.Sprintf("offload: resume with context in state %s", st))
	}
	ctx.markResumed()
	atomic.AddInt64(&d.resumes, 1)
	if d.onResume != nil {
		d.onResume()
	}

	req := ctx.Request()
	d.host.DecrementOutstandingAsync(req)
	d.host.ReenterPipeline(req)
}
