package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAttemptTracker(t *testing.T) {
	attemptTrackerContract(t, func(threshold int) LoginAttemptTracker {
		_, client := newTestRedis(t)
		return NewRedisAttemptTracker(client, threshold, 0)
	})
}

func TestRedisAttemptTrackerTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	tr := NewRedisAttemptTracker(client, 1, 15*time.Minute)
	ctx := context.Background()

	_, err := tr.RecordFailure(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, mr.TTL(attemptKeyPrefix+"alice"))

	locked, err := tr.IsLocked(ctx, "alice")
	require.NoError(t, err)
	require.True(t, locked)

	mr.FastForward(16 * time.Minute)
	locked, err = tr.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRedisAttemptTrackerWithoutTTLKeepsKey(t *testing.T) {
	mr, client := newTestRedis(t)
	tr := NewRedisAttemptTracker(client, 1, 0)

	_, err := tr.RecordFailure(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, mr.TTL(attemptKeyPrefix+"alice"))
}
