// Package sync provides keyed locking for per-partner and per-token critical sections.
package sync

import (
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

// ShardedMutex serializes work on the same key while letting unrelated keys
// proceed on other shards. Two keys may share a shard; that only costs
// contention, never correctness.
type ShardedMutex struct {
	shards [shardCount]sync.Mutex
	onWait func(time.Duration)
}

// Option configures a ShardedMutex.
type Option func(*ShardedMutex)

// WithWaitObserver reports how long each Do call waited for its shard.
func WithWaitObserver(fn func(time.Duration)) Option {
	return func(m *ShardedMutex) {
		m.onWait = fn
	}
}

// NewShardedMutex creates a mutex with 32 shards.
func NewShardedMutex(opts ...Option) *ShardedMutex {
	m := &ShardedMutex{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lock acquires the shard owning key.
func (m *ShardedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

// Unlock releases the shard owning key.
func (m *ShardedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

// Do runs fn while holding the shard for key.
func (m *ShardedMutex) Do(key string, fn func() error) error {
	start := time.Now()
	m.Lock(key)
	if m.onWait != nil {
		m.onWait(time.Since(start))
	}
	defer m.Unlock(key)
	return fn()
}

func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
