//go:build linux

// File: internal/concurrency/wakeup_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux wakeup primitive backed by eventfd. Signal is safe from any
// goroutine; Wait blocks the loop goroutine until at least one signal
// has been posted since the last drain.

package concurrency

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

type wakeup struct {
	fd int
}

func newWakeup() (*wakeup, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &wakeup{fd: fd}, nil
}

// Signal increments the eventfd counter. Coalescing is fine: one pending
// signal is enough to make the next Wait return.
func (w *wakeup) Signal() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(w.fd, buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

// Wait blocks until the counter is nonzero, then drains it.
func (w *wakeup) Wait() {
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

func (w *wakeup) Close() error {
	return unix.Close(w.fd)
}
