// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for hioload-offload: a bounded MPMC task queue,
// a fixed-size worker pool with non-blocking submission, and a single-goroutine
// event loop with a cross-thread wakeup primitive (eventfd on Linux, channel
// elsewhere via build tags).
//
// The loop goroutine is the only executor of posted callbacks; workers never
// touch loop state except through the wakeup handoff.
package concurrency
