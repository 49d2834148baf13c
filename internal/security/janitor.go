package security

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops state that can no longer affect a decision.
type Sweeper interface {
	Sweep(now time.Time) int
}

// RunJanitor sweeps every interval until ctx is done.
func RunJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger, sweepers ...Sweeper) {
	if interval <= 0 || len(sweepers) == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := 0
			for _, s := range sweepers {
				removed += s.Sweep(now)
			}
			if removed > 0 {
				logger.Debug("security state swept", zap.Int("removed", removed))
			}
		}
	}
}
