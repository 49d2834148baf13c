// Package app assembles the service from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apihttp "github.com/mauledji/cariss/internal/api/http"
	"github.com/mauledji/cariss/internal/api/http/handlers"
	"github.com/mauledji/cariss/internal/auth"
	"github.com/mauledji/cariss/internal/config"
	"github.com/mauledji/cariss/internal/events"
	"github.com/mauledji/cariss/internal/observability"
	"github.com/mauledji/cariss/internal/persistence"
	"github.com/mauledji/cariss/internal/repository"
	"github.com/mauledji/cariss/internal/security"
	"github.com/mauledji/cariss/internal/service"
	"github.com/mauledji/cariss/internal/worker"
)

// App is a fully wired service instance.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	HTTP     *fiber.App
	Postgres *persistence.Postgres
	Redis    *persistence.Redis

	sweepers []security.Sweeper
}

// New connects to the configured stores and builds the HTTP application.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			pg.Close()
			return nil, err
		}
	}
	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewMetrics(),
		Postgres: pg,
		Redis:    rdb,
	}

	var users repository.UserRepository
	if pg.Enabled() {
		users = repository.NewUserRepository(pg.Pool)
	} else {
		users = repository.NewMemoryUserRepository()
	}

	limiter, attempts := a.securityState()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := auth.PasswordPolicy{}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, a.Metrics))

	authService := service.NewAuthService(service.AuthDependencies{
		Users:    users,
		Hasher:   hasher,
		Tokens:   tokens,
		Attempts: attempts,
		Policy:   policy,
		Events:   dispatcher,
		Logger:   logger,
	})

	gate := security.NewGate(security.GateConfig{
		PublicPaths:      cfg.Security.PublicPaths,
		RateLimitedPaths: cfg.Security.RateLimitedPaths,
	}, limiter, tokens)

	a.HTTP = apihttp.NewApp(apihttp.ServerDependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: a.Metrics,
		Gate:    auth.NewGateMiddleware(gate, logger, a.Metrics),
		Auth:    authService,
		Users:   service.NewUserService(users, hasher, policy),
		Checks: map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    rdb,
		},
	})

	logger.Info("service assembled",
		zap.String("state_backend", cfg.Security.StateBackend),
		zap.Bool("postgres", pg.Enabled()),
		zap.Bool("redis", rdb.Enabled()))
	return a, nil
}

// securityState picks the rate limiter and attempt tracker for the
// configured backend. Memory state is registered for sweeping; Redis state
// expires on its own.
func (a *App) securityState() (security.RateLimiter, security.LoginAttemptTracker) {
	sec, authCfg := a.Config.Security, a.Config.Auth
	if sec.StateBackend == config.BackendRedis && a.Redis.Enabled() {
		return security.NewRedisRateLimiter(a.Redis.Client, sec.RateLimitMax, sec.RateLimitWindow),
			security.NewRedisAttemptTracker(a.Redis.Client, authCfg.LockoutThreshold, authCfg.LockoutTTL)
	}

	limiter := security.NewMemoryRateLimiter(sec.RateLimitMax, sec.RateLimitWindow)
	attempts := security.NewMemoryAttemptTracker(authCfg.LockoutThreshold, authCfg.LockoutTTL, nil)
	a.sweepers = append(a.sweepers, limiter, attempts)
	return limiter, attempts
}

// StartBackground launches the janitor for in-memory security state. The
// returned channel closes once it has stopped.
func (a *App) StartBackground(ctx context.Context) <-chan struct{} {
	return worker.StartSweepWorker(ctx, a.Config.Security.SweepInterval, a.Logger, a.sweepers...)
}

// Close releases store connections.
func (a *App) Close() {
	a.Redis.Close()
	a.Postgres.Close()
}
