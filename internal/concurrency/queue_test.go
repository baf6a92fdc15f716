// File: internal/concurrency/queue_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unit tests for the bounded MPMC queue.

package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBoundedQueue_FIFOAndBound(t *testing.T) {
	q := newBoundedQueue[int](2)
	if !q.TryEnqueue(1) || !q.TryEnqueue(2) {
		t.Fatalf("enqueue within bound failed")
	}
	if q.TryEnqueue(3) {
		t.Errorf("enqueue beyond bound succeeded")
	}
	if q.Len() != 2 || q.Cap() != 2 {
		t.Errorf("Len/Cap = %d/%d, want 2/2", q.Len(), q.Cap())
	}
	for want := 1; want <= 2; want++ {
		v, ok := q.TryDequeue()
		if !ok || v != want {
			t.Errorf("TryDequeue = %d,%v, want %d,true", v, ok, want)
		}
	}
	if _, ok := q.TryDequeue(); ok {
		t.Errorf("TryDequeue on empty queue succeeded")
	}
}

func TestBoundedQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := newBoundedQueue[string](4)
	got := make(chan string, 1)
	go func() {
		v, ok := q.Dequeue()
		if ok {
			got <- v
		}
	}()

	time.Sleep(20 * time.Millisecond)
	if !q.TryEnqueue("wake") {
		t.Fatalf("enqueue failed")
	}
	select {
	case v := <-got:
		if v != "wake" {
			t.Errorf("dequeued %q, want %q", v, "wake")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("blocked consumer never woke")
	}
}

func TestBoundedQueue_EnqueueBlocksUntilSpace(t *testing.T) {
	q := newBoundedQueue[int](1)
	if !q.TryEnqueue(1) {
		t.Fatalf("enqueue into empty queue failed")
	}

	accepted := make(chan bool, 1)
	go func() {
		accepted <- q.Enqueue(2)
	}()

	select {
	case <-accepted:
		t.Fatalf("Enqueue returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	if v, ok := q.TryDequeue(); !ok || v != 1 {
		t.Fatalf("TryDequeue = %d,%v, want 1,true", v, ok)
	}
	select {
	case ok := <-accepted:
		if !ok {
			t.Errorf("Enqueue returned false on an open queue")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("blocked producer never admitted after space freed")
	}
	if v, ok := q.TryDequeue(); !ok || v != 2 {
		t.Errorf("TryDequeue = %d,%v, want 2,true", v, ok)
	}
}

func TestBoundedQueue_CloseReleasesBlockedProducers(t *testing.T) {
	q := newBoundedQueue[int](1)
	q.TryEnqueue(1)

	accepted := make(chan bool, 1)
	go func() {
		accepted <- q.Enqueue(2)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()
	select {
	case ok := <-accepted:
		if ok {
			t.Errorf("Enqueue succeeded on a closed queue")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not release blocked producer")
	}
}

func TestBoundedQueue_CloseDrainsThenStops(t *testing.T) {
	q := newBoundedQueue[int](8)
	for i := 0; i < 3; i++ {
		q.TryEnqueue(i)
	}
	q.Close()
	if q.TryEnqueue(99) {
		t.Errorf("enqueue after close succeeded")
	}
	for i := 0; i < 3; i++ {
		v, ok := q.Dequeue()
		if !ok || v != i {
			t.Errorf("Dequeue = %d,%v, want %d,true", v, ok, i)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Errorf("Dequeue after drain succeeded")
	}
}

func TestBoundedQueue_CloseReleasesBlockedConsumers(t *testing.T) {
	q := newBoundedQueue[int](4)
	released := make(chan struct{})
	go func() {
		_, ok := q.Dequeue()
		if ok {
			t.Errorf("Dequeue returned a value from an empty closed queue")
		}
		close(released)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not release blocked consumer")
	}
}

func TestBoundedQueue_MPMC(t *testing.T) {
	q := newBoundedQueue[int](64)
	producers := 8
	consumers := 8
	itemsPerProducer := 2000
	totalItems := int64(producers * itemsPerProducer)

	var wg sync.WaitGroup
	var sentSum int64
	var receivedSum int64
	var receivedCount int64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				for !q.TryEnqueue(val) {
					runtime.Gosched()
				}
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				if val, ok := q.TryDequeue(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					if atomic.AddInt64(&receivedCount, 1) == totalItems {
						return
					}
				} else {
					if atomic.LoadInt64(&receivedCount) >= totalItems {
						return
					}
					runtime.Gosched()
				}
			}
		}()
	}

	wg.Wait()
	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("consumers stalled: received %d of %d",
			atomic.LoadInt64(&receivedCount), totalItems)
	}

	if sentSum != receivedSum {
		t.Errorf("checksum mismatch: sent %d, received %d", sentSum, receivedSum)
	}
}
