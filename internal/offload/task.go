// File: internal/offload/task.go
// Package offload
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package offload

import (
	"time"

	"github.com/momentics/hioload-offload/api"
)

// sleepStepMS is the granularity of the simulated blocking work: the task
// sleeps between 1 and 9 steps of 100 ms each.
const (
	sleepStepMS = 100
	sleepSteps  = 9
)

// newSleepTask builds the task unit for one suspend. The random draw is
// taken at dispatch time and copied into the task, so the worker never reads
// mutable request state before execution. step scales the real sleep without
// changing the reported duration.
func newSleepTask(ctx *RequestContext, randomValue int64, step time.Duration, done func()) *api.Task {
	if randomValue < 0 {
		randomValue = -randomValue
	}
	units := randomValue%sleepSteps + 1
	durationMS := units * sleepStepMS
	return &api.Task{
		Body: func() {
			// first action of execution: a request observing PROCESSING
			// is guaranteed the worker has started
			ctx.advance(StateInit, StateProcessing)
			time.Sleep(time.Duration(units) * step)
			ctx.setOutput(Output{DurationMS: durationMS})
			// last action before the completion hook fires
			ctx.advance(StateProcessing, StateDone)
		},
		Done: done,
	}
}
