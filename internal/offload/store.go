// File: internal/offload/store.go
// Package offload
// Author: momentics <momentics@gmail.com>
//
// Sharded, thread-safe store mapping request IDs to their contexts. The
// typed store stands in for host-managed per-request associative storage;
// entries are removed when the request finishes or fails.

package offload

import (
	"sync"
)

// ContextStore holds at most one RequestContext per request.
type ContextStore struct {
	shards []*storeShard
	mask   uint64
}

type storeShard struct {
	mu   sync.RWMutex
	ctxs map[uint64]*RequestContext
}

// NewContextStore constructs a store with shardCount shards (rounded up to
// a power of two).
func NewContextStore(shardCount int) *ContextStore {
	if shardCount <= 0 {
		shardCount = 16
	}
	m := nextPowerOfTwo(uint64(shardCount))
	shards := make([]*storeShard, m)
	for i := range shards {
		shards[i] = &storeShard{ctxs: make(map[uint64]*RequestContext)}
	}
	return &ContextStore{shards: shards, mask: m - 1}
}

// shard picks the shard for a request ID. IDs are typically sequential, so
// mix the bits before masking.
func (s *ContextStore) shard(id uint64) *storeShard {
	h := id * 0x9e3779b97f4a7c15
	return s.shards[(h>>32)&s.mask]
}

// Get fetches the context for a request if present.
func (s *ContextStore) Get(id uint64) (*RequestContext, bool) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	ctx, ok := sh.ctxs[id]
	return ctx, ok
}

// Set installs the context for a request.
func (s *ContextStore) Set(id uint64, ctx *RequestContext) {
	sh := s.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.ctxs[id] = ctx
}

// Delete removes a request's context.
func (s *ContextStore) Delete(id uint64) {
	sh := s.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.ctxs, id)
}

// Len returns the number of live contexts.
func (s *ContextStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.ctxs)
		sh.mu.RUnlock()
	}
	return n
}

// Range calls fn for every live context.
func (s *ContextStore) Range(fn func(id uint64, ctx *RequestContext)) {
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id, ctx := range sh.ctxs {
			fn(id, ctx)
		}
		sh.mu.RUnlock()
	}
}

func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
