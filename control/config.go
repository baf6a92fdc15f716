// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update, validation of the
// offload knobs, and hot-reload propagation.

package control

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-offload/api"
)

// Well-known configuration keys. The worker count and queue bound are the
// only operationally relevant knobs of the offload core.
const (
	KeyNumWorkers    = "offload.num_workers"
	KeyQueueCapacity = "offload.queue_capacity"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener
// support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// SetConfig validates and merges new values, then dispatches reload hooks.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) error {
	for _, key := range []string{KeyNumWorkers, KeyQueueCapacity} {
		if raw, ok := newCfg[key]; ok {
			n, ok := asInt(raw)
			if !ok || n <= 0 {
				return api.NewError(api.ErrCodeConfig,
					fmt.Sprintf("%s must be a positive integer", key)).
					WithContext("value", raw)
			}
		}
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
	return nil
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes all listeners. Caller holds cs.mu.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
