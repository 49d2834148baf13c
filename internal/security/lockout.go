package security

import (
	"context"
	"time"
)

// LoginAttemptTracker counts failed logins per identifier and reports lockout.
type LoginAttemptTracker interface {
	IsLocked(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) (int, error)
	Clear(ctx context.Context, identifier string) error
}

type attemptState struct {
	failures    int
	lastFailure time.Time
}

// MemoryAttemptTracker keeps failure counts in process memory.
type MemoryAttemptTracker struct {
	threshold int
	ttl       time.Duration
	now       func() time.Time
	attempts  *shardedMap[attemptState]
}

// NewMemoryAttemptTracker locks an identifier once it reaches threshold failures.
// With ttl zero, failures are kept until Clear; otherwise the count is dropped
// once ttl has passed since the last failure. A nil now uses time.Now.
func NewMemoryAttemptTracker(threshold int, ttl time.Duration, now func() time.Time) *MemoryAttemptTracker {
	if now == nil {
		now = time.Now
	}
	return &MemoryAttemptTracker{
		threshold: threshold,
		ttl:       ttl,
		now:       now,
		attempts:  newShardedMap[attemptState](),
	}
}

// IsLocked reports whether identifier has reached the failure threshold.
func (t *MemoryAttemptTracker) IsLocked(_ context.Context, identifier string) (bool, error) {
	now := t.now()
	locked := false
	t.attempts.update(identifier, func(st *attemptState) *attemptState {
		if st == nil || t.expired(st, now) {
			return nil
		}
		locked = st.failures >= t.threshold
		return st
	})
	return locked, nil
}

// RecordFailure increments the failure count and returns the new value.
func (t *MemoryAttemptTracker) RecordFailure(_ context.Context, identifier string) (int, error) {
	now := t.now()
	count := 0
	t.attempts.update(identifier, func(st *attemptState) *attemptState {
		if st == nil || t.expired(st, now) {
			st = &attemptState{}
		}
		st.failures++
		st.lastFailure = now
		count = st.failures
		return st
	})
	return count, nil
}

// Clear forgets all failures for identifier.
func (t *MemoryAttemptTracker) Clear(_ context.Context, identifier string) error {
	t.attempts.remove(identifier)
	return nil
}

// Sweep drops expired entries. It is a no-op when no ttl is configured.
func (t *MemoryAttemptTracker) Sweep(now time.Time) int {
	if t.ttl <= 0 {
		return 0
	}
	return t.attempts.removeIf(func(st *attemptState) bool {
		return t.expired(st, now)
	})
}

func (t *MemoryAttemptTracker) expired(st *attemptState, now time.Time) bool {
	return t.ttl > 0 && now.After(st.lastFailure.Add(t.ttl))
}
