package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/mauledji/cariss/internal/events"
	"github.com/mauledji/cariss/internal/observability"
	"github.com/mauledji/cariss/internal/service"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Time) int {
	s.calls.Add(1)
	return 1
}

func TestStartSweepWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sweeper := &countingSweeper{}

	done := StartSweepWorker(ctx, 5*time.Millisecond, zaptest.NewLogger(t), sweeper)
	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep worker did not stop")
	}
}

func TestStartAuditWorkerSubscribes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(service.NewAuditService(dispatcher, zap.NewNop(), observability.NewMetrics()))
	StartAuditWorker(nil)

	assert.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, "x", "", nil)))
}
