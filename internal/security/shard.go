package security

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*V
}

// shardedMap serializes access per shard; each key always lands on the same shard.
type shardedMap[V any] struct {
	shards [shardCount]*shard[V]
}

func newShardedMap[V any]() *shardedMap[V] {
	m := &shardedMap[V]{}
	for i := range m.shards {
		m.shards[i] = &shard[V]{entries: make(map[string]*V)}
	}
	return m
}

func (m *shardedMap[V]) shardFor(key string) *shard[V] {
	return m.shards[xxhash.Sum64String(key)%shardCount]
}

// update runs fn on the current entry for key (nil if absent) while holding the
// shard lock. A nil return removes the entry.
func (m *shardedMap[V]) update(key string, fn func(cur *V) *V) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.entries[key])
	if next == nil {
		delete(s.entries, key)
		return
	}
	s.entries[key] = next
}

func (m *shardedMap[V]) remove(key string) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// removeIf deletes every entry matching stale and returns how many were removed.
func (m *shardedMap[V]) removeIf(stale func(*V) bool) int {
	removed := 0
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.entries {
			if stale(v) {
				delete(s.entries, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

func (m *shardedMap[V]) len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}
