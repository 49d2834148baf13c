package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/domain"
	"github.com/mauledji/cariss/internal/observability"
	"github.com/mauledji/cariss/internal/security"
	apperrors "github.com/mauledji/cariss/pkg/util"
)

const identityLocalsKey = "auth_identity"

// GateMiddleware runs every request through the security gate.
type GateMiddleware struct {
	gate    *security.Gate
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGateMiddleware constructs middleware.
func NewGateMiddleware(gate *security.Gate, logger *zap.Logger, metrics *observability.Metrics) *GateMiddleware {
	return &GateMiddleware{gate: gate, logger: logger, metrics: metrics}
}

// Handle rejects requests the gate refuses and attaches the caller's
// identity to the rest.
func (m *GateMiddleware) Handle(c *fiber.Ctx) error {
	outcome := m.gate.Evaluate(c.UserContext(), security.Request{
		Method:        c.Method(),
		Path:          c.Path(),
		ForwardedFor:  c.Get(fiber.HeaderXForwardedFor),
		RemoteAddr:    c.Context().RemoteAddr().String(),
		Authorization: c.Get(fiber.HeaderAuthorization),
	})

	if !outcome.Allowed {
		domainErr := apperrors.ToDomainError(outcome.Err)
		m.metrics.RecordGateRejection(outcome.Stage, domainErr.Code)
		if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
			m.logger.Error("gate failure", zap.String("stage", outcome.Stage), zap.Error(domainErr))
		} else {
			m.logger.Debug("gate rejected request",
				zap.String("stage", outcome.Stage),
				zap.String("code", domainErr.Code),
				zap.String("path", c.Path()))
		}
		return domainErr
	}

	if outcome.Identity != nil {
		c.Locals(identityLocalsKey, outcome.Identity)
		c.SetUserContext(domain.WithIdentity(c.UserContext(), outcome.Identity))
	}
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityLocalsKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// RequireIdentity guards a route group even if the gate's public list is
// misconfigured to cover it.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
