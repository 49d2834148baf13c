package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/api/http/handlers"
	"github.com/mauledji/cariss/internal/auth"
	"github.com/mauledji/cariss/internal/config"
	"github.com/mauledji/cariss/internal/observability"
	"github.com/mauledji/cariss/internal/service"
)

// ServerDependencies are the collaborators NewApp wires into handlers.
type ServerDependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Gate    *auth.GateMiddleware
	Auth    *service.AuthService
	Users   *service.UserService
	Checks  map[string]handlers.Pinger
}

// NewApp builds the Fiber application with middleware and routes attached.
func NewApp(deps ServerDependencies) *fiber.App {
	cfg := deps.Config
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		CaseSensitive:         true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		ErrorHandler:          errorHandler(deps.Logger, deps.Metrics),
	})

	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:      deps.Logger,
		Metrics:     deps.Metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.Security.CORSOrigins,
		Gate:        deps.Gate,
	})

	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Checks),
		Auth:    handlers.NewAuthHandler(deps.Auth),
		Users:   handlers.NewUsersHandler(deps.Users),
		Metrics: deps.Metrics,
	})
	return app
}
