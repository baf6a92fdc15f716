// File: internal/offload/context_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unit tests for the request context state machine.

package offload

import (
	"testing"

	"github.com/momentics/hioload-offload/fake"
)

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateInit:       "INIT",
		StateProcessing: "PROCESSING",
		StateDone:       "DONE",
		State(42):       "INVALID",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestContext_TransitionsForward(t *testing.T) {
	ctx := newRequestContext(fake.NewRequest(1))
	if ctx.State() != StateInit {
		t.Fatalf("fresh context state = %s, want INIT", ctx.State())
	}
	ctx.advance(StateInit, StateProcessing)
	if ctx.State() != StateProcessing {
		t.Fatalf("state = %s, want PROCESSING", ctx.State())
	}
	ctx.setOutput(Output{DurationMS: 300})
	ctx.advance(StateProcessing, StateDone)
	if ctx.State() != StateDone {
		t.Fatalf("state = %s, want DONE", ctx.State())
	}
	if ctx.Output().DurationMS != 300 {
		t.Errorf("output duration = %d, want 300", ctx.Output().DurationMS)
	}
}

func TestContext_IllegalTransitionPanics(t *testing.T) {
	ctx := newRequestContext(fake.NewRequest(2))
	defer func() {
		if recover() == nil {
			t.Errorf("skipped transition did not panic")
		}
	}()
	// skipping PROCESSING is a defect, not a runtime condition
	ctx.advance(StateProcessing, StateDone)
}

func TestContext_RepeatedTransitionPanics(t *testing.T) {
	ctx := newRequestContext(fake.NewRequest(3))
	ctx.advance(StateInit, StateProcessing)
	defer func() {
		if recover() == nil {
			t.Errorf("repeated transition did not panic")
		}
	}()
	ctx.advance(StateInit, StateProcessing)
}

func TestContext_ResumedTwicePanics(t *testing.T) {
	ctx := newRequestContext(fake.NewRequest(4))
	ctx.advance(StateInit, StateProcessing)
	ctx.advance(StateProcessing, StateDone)
	ctx.markResumed()
	defer func() {
		if recover() == nil {
			t.Errorf("second markResumed did not panic")
		}
	}()
	ctx.markResumed()
}
