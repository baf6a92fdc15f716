// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probes over the offload runtime. The facade registers one probe per
// moving part: pool counters, event-loop depth, live request contexts.

package control

import "sync"

// LoopProbe is the event-loop snapshot reported by the loop probe.
type LoopProbe struct {
	// Pending is the number of callbacks waiting in the loop inbox.
	Pending int
	// Processed is the total number of callbacks the loop has run.
	Processed int64
}

// ContextProbe is the context-store snapshot reported by the contexts probe.
type ContextProbe struct {
	// Live is the number of requests currently holding a context,
	// suspended or resumed-but-not-released.
	Live int
}

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook. A later registration under the
// same name replaces the earlier one.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState evaluates every probe and returns the results by name.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
