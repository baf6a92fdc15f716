// File: internal/concurrency/workerpool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unit tests for the fixed-size worker pool.

package concurrency

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-offload/api"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout: %s", msg)
}

func TestPool_InvalidConfig(t *testing.T) {
	if _, err := NewPool(0, 4); err != ErrInvalidWorkerCount {
		t.Errorf("NewPool(0,4) err = %v, want ErrInvalidWorkerCount", err)
	}
	if _, err := NewPool(4, 0); err != ErrInvalidQueueCapacity {
		t.Errorf("NewPool(4,0) err = %v, want ErrInvalidQueueCapacity", err)
	}
}

func TestPool_ExecutesBodyThenDone(t *testing.T) {
	p, err := NewPool(2, 16)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	var bodies, dones, ordered int64
	const tasks = 20
	for i := 0; i < tasks; i++ {
		var bodyRan int32
		err := p.Submit(&api.Task{
			Body: func() {
				atomic.StoreInt32(&bodyRan, 1)
				atomic.AddInt64(&bodies, 1)
			},
			Done: func() {
				if atomic.LoadInt32(&bodyRan) == 1 {
					atomic.AddInt64(&ordered, 1)
				}
				atomic.AddInt64(&dones, 1)
			},
		})
		if err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
	}

	waitFor(t, 5*time.Second, func() bool {
		return atomic.LoadInt64(&dones) == tasks
	}, "tasks did not complete")

	if atomic.LoadInt64(&bodies) != tasks {
		t.Errorf("bodies = %d, want %d", bodies, tasks)
	}
	if atomic.LoadInt64(&ordered) != tasks {
		t.Errorf("Done fired before Body on %d tasks", tasks-ordered)
	}
	stats := p.Stats()
	if stats["submitted_tasks"] != tasks || stats["completed_tasks"] != tasks {
		t.Errorf("stats = %+v, want %d submitted and completed", stats, tasks)
	}
}

func TestPool_RejectsWhenQueueFull(t *testing.T) {
	p, err := NewPool(1, 1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	gate := make(chan struct{})
	var started int32
	// plug the single worker
	if err := p.Submit(&api.Task{Body: func() {
		atomic.StoreInt32(&started, 1)
		<-gate
	}}); err != nil {
		t.Fatalf("Submit plug: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(&started) == 1
	}, "plug task never started")

	// fill the queue bound of one
	if err := p.Submit(&api.Task{Body: func() {}}); err != nil {
		t.Fatalf("Submit queued task: %v", err)
	}
	if err := p.Submit(&api.Task{Body: func() {}}); err != ErrQueueFull {
		t.Errorf("Submit over bound err = %v, want ErrQueueFull", err)
	}
	if got := p.Stats()["rejected_tasks"]; got != 1 {
		t.Errorf("rejected_tasks = %d, want 1", got)
	}
	close(gate)
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p, err := NewPool(1, 4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	p.Close()
	if err := p.Submit(&api.Task{Body: func() {}}); err != ErrPoolClosed {
		t.Errorf("Submit after Close err = %v, want ErrPoolClosed", err)
	}
	if err := p.Submit(nil); err != ErrNilTask {
		t.Errorf("Submit(nil) err = %v, want ErrNilTask", err)
	}
}

func TestPool_WorkerSurvivesPanic(t *testing.T) {
	p, err := NewPool(1, 8)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	var doneFired, secondRan int64
	if err := p.Submit(&api.Task{
		Body: func() { panic("defective body") },
		Done: func() { atomic.AddInt64(&doneFired, 1) },
	}); err != nil {
		t.Fatalf("Submit panicking task: %v", err)
	}
	if err := p.Submit(&api.Task{
		Body: func() { atomic.AddInt64(&secondRan, 1) },
	}); err != nil {
		t.Fatalf("Submit follow-up task: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool {
		return atomic.LoadInt64(&secondRan) == 1
	}, "worker died after panic")
	if atomic.LoadInt64(&doneFired) != 1 {
		t.Errorf("Done did not fire for a panicking body")
	}
}

func TestPool_CloseDrainsQueuedTasks(t *testing.T) {
	p, err := NewPool(1, 16)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	var ran int64
	const tasks = 10
	for i := 0; i < tasks; i++ {
		if err := p.Submit(&api.Task{Body: func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&ran, 1)
		}}); err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
	}
	p.Close()
	if got := atomic.LoadInt64(&ran); got != tasks {
		t.Errorf("Close returned with %d of %d tasks run", got, tasks)
	}
}
