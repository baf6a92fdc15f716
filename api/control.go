// File: api/control.go
// Package api defines the runtime control surface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control is the operational surface of the offload core: the pool knobs,
// live counters from the pool and dispatch paths, and debug probes over the
// loop and context store.
type Control interface {
	// GetConfig returns a snapshot of the configured knobs
	// (worker count, queue bound).
	GetConfig() map[string]any

	// SetConfig validates and merges knob values; invalid pool knobs are
	// rejected with ErrCodeConfig and nothing is stored.
	SetConfig(cfg map[string]any) error

	// Stats returns the combined counter and probe snapshot. Probe
	// entries are keyed "debug.<name>".
	Stats() map[string]any

	// OnReload registers a hook fired after each accepted SetConfig.
	OnReload(fn func())

	// RegisterDebugProbe installs a named state probe evaluated at each
	// Stats call.
	RegisterDebugProbe(name string, fn func() any)
}
