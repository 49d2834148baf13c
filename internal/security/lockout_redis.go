package security

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "login_attempts:"

// RedisAttemptTracker keeps failure counts in Redis. INCR makes concurrent
// failures for one identifier count exactly once each.
type RedisAttemptTracker struct {
	client    *redis.Client
	threshold int
	ttl       time.Duration
}

// NewRedisAttemptTracker mirrors NewMemoryAttemptTracker; ttl zero keeps counts forever.
func NewRedisAttemptTracker(client *redis.Client, threshold int, ttl time.Duration) *RedisAttemptTracker {
	return &RedisAttemptTracker{client: client, threshold: threshold, ttl: ttl}
}

// IsLocked reports whether identifier has reached the failure threshold.
func (t *RedisAttemptTracker) IsLocked(ctx context.Context, identifier string) (bool, error) {
	count, err := t.client.Get(ctx, attemptKeyPrefix+identifier).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return count >= t.threshold, nil
}

// RecordFailure increments the failure count and returns the new value.
func (t *RedisAttemptTracker) RecordFailure(ctx context.Context, identifier string) (int, error) {
	key := attemptKeyPrefix + identifier
	var incr *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if t.ttl > 0 {
			pipe.PExpire(ctx, key, t.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

// Clear forgets all failures for identifier.
func (t *RedisAttemptTracker) Clear(ctx context.Context, identifier string) error {
	return t.client.Del(ctx, attemptKeyPrefix+identifier).Err()
}
