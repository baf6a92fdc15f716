//go:build !linux

// File: internal/concurrency/wakeup_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable wakeup fallback for platforms without eventfd. A one-slot
// channel gives the same coalescing semantics as the eventfd counter.

package concurrency

type wakeup struct {
	ch chan struct{}
}

func newWakeup() (*wakeup, error) {
	return &wakeup{ch: make(chan struct{}, 1)}, nil
}

func (w *wakeup) Signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func (w *wakeup) Wait() {
	<-w.ch
}

func (w *wakeup) Close() error {
	return nil
}
