package security

import (
	"context"
	"time"
)

// RateLimiter decides whether a client may make another request in its
// current window.
type RateLimiter interface {
	Admit(ctx context.Context, key string, now time.Time) (bool, error)
}

type requestWindow struct {
	count int
	start time.Time
}

// MemoryRateLimiter counts requests per client in a window that restarts lazily
// on the first request after it has elapsed.
type MemoryRateLimiter struct {
	limit   int
	window  time.Duration
	windows *shardedMap[requestWindow]
}

// NewMemoryRateLimiter admits at most limit requests per key per window.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:   limit,
		window:  window,
		windows: newShardedMap[requestWindow](),
	}
}

// Admit counts the request if key is under its cap for the current window.
// Rejected requests are not counted.
func (l *MemoryRateLimiter) Admit(_ context.Context, key string, now time.Time) (bool, error) {
	admitted := false
	l.windows.update(key, func(w *requestWindow) *requestWindow {
		if w == nil || now.After(w.start.Add(l.window)) {
			w = &requestWindow{start: now}
		}
		if w.count < l.limit {
			w.count++
			admitted = true
		}
		return w
	})
	return admitted, nil
}

// Sweep drops windows that have elapsed as of now. Those windows would be
// restarted on next access anyway, so sweeping never changes a decision.
func (l *MemoryRateLimiter) Sweep(now time.Time) int {
	return l.windows.removeIf(func(w *requestWindow) bool {
		return now.After(w.start.Add(l.window))
	})
}

// Len returns the number of tracked clients.
func (l *MemoryRateLimiter) Len() int {
	return l.windows.len()
}
