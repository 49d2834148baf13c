package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/security"
	"github.com/mauledji/cariss/internal/service"
)

// StartAuditWorker registers audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}

// StartSweepWorker runs the security state janitor in the background until
// ctx is cancelled. The returned channel closes once it has stopped.
func StartSweepWorker(ctx context.Context, interval time.Duration, logger *zap.Logger, sweepers ...security.Sweeper) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		security.RunJanitor(ctx, interval, logger, sweepers...)
	}()
	return done
}
