package security

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// KEYS[1] window hash; ARGV: now ms, window ms, limit, key ttl ms.
var admitScript = redis.NewScript(`
local start = redis.call('HGET', KEYS[1], 'start')
local count = 0
if start and tonumber(ARGV[1]) <= tonumber(start) + tonumber(ARGV[2]) then
	count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
else
	redis.call('HSET', KEYS[1], 'start', ARGV[1], 'count', '0')
end
if count >= tonumber(ARGV[3]) then
	return 0
end
redis.call('HINCRBY', KEYS[1], 'count', 1)
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// RedisRateLimiter keeps request windows in Redis so replicas share one count.
// The check and increment run as a single script, which Redis executes atomically.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisRateLimiter admits at most limit requests per key per window.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window}
}

// Admit counts the request if key is under its cap for the current window.
func (l *RedisRateLimiter) Admit(ctx context.Context, key string, now time.Time) (bool, error) {
	windowMs := l.window.Milliseconds()
	res, err := admitScript.Run(ctx, l.client, []string{rateLimitKeyPrefix + key},
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(windowMs, 10),
		strconv.Itoa(l.limit),
		strconv.FormatInt(2*windowMs, 10),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
