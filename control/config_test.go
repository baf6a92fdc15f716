// File: control/config_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Configuration store tests.

package control

import (
	"testing"
	"time"

	"github.com/momentics/hioload-offload/api"
)

func TestConfigStore_SetAndSnapshot(t *testing.T) {
	cs := NewConfigStore()
	if err := cs.SetConfig(map[string]any{
		KeyNumWorkers:    8,
		KeyQueueCapacity: 64,
		"custom":         "value",
	}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	snap := cs.GetSnapshot()
	if snap[KeyNumWorkers] != 8 || snap["custom"] != "value" {
		t.Errorf("snapshot = %+v", snap)
	}
	// snapshot is a copy
	snap["custom"] = "mutated"
	if cs.GetSnapshot()["custom"] != "value" {
		t.Errorf("snapshot mutation leaked into store")
	}
}

func TestConfigStore_RejectsInvalidKnobs(t *testing.T) {
	cs := NewConfigStore()
	cases := []map[string]any{
		{KeyNumWorkers: 0},
		{KeyNumWorkers: -4},
		{KeyQueueCapacity: 0},
		{KeyNumWorkers: "eight"},
	}
	for _, cfg := range cases {
		err := cs.SetConfig(cfg)
		if api.CodeOf(err) != api.ErrCodeConfig {
			t.Errorf("SetConfig(%+v) err = %v, want config code", cfg, err)
		}
	}
	if len(cs.GetSnapshot()) != 0 {
		t.Errorf("rejected values were stored")
	}
}

func TestConfigStore_AcceptsWiderIntTypes(t *testing.T) {
	cs := NewConfigStore()
	if err := cs.SetConfig(map[string]any{KeyNumWorkers: int64(12)}); err != nil {
		t.Fatalf("SetConfig(int64): %v", err)
	}
	if err := cs.SetConfig(map[string]any{KeyQueueCapacity: float64(64)}); err != nil {
		t.Fatalf("SetConfig(float64): %v", err)
	}
	snap := cs.GetSnapshot()
	if snap[KeyNumWorkers] != int64(12) || snap[KeyQueueCapacity] != float64(64) {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestConfigStore_ReloadHook(t *testing.T) {
	cs := NewConfigStore()
	fired := make(chan struct{}, 1)
	cs.OnReload(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err := cs.SetConfig(map[string]any{"k": "v"}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("reload hook never fired")
	}
}
