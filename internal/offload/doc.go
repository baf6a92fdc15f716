// Package offload
// Author: momentics <momentics@gmail.com>
//
// Suspend/dispatch/resume core. A request entering the suspendable stage
// gets a per-request context and a task on the worker pool, and is parked.
// The worker drives the context through INIT -> PROCESSING -> DONE, then the
// completion path crosses back to the event-loop goroutine, which resumes
// the request exactly once.
//
// Contexts are single-writer by construction: the worker owns a context
// until DONE, the loop goroutine after; the wakeup handoff is the
// happens-before edge between the two.

package offload
