package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/domain"
	"github.com/mauledji/cariss/internal/observability"
	"github.com/mauledji/cariss/internal/security"
	apperrors "github.com/mauledji/cariss/pkg/util"
)

func newGateApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	gate := security.NewGate(security.GateConfig{
		PublicPaths:      []string{"/api/auth/**"},
		RateLimitedPaths: []string{"/api/auth/**"},
	}, security.NewMemoryRateLimiter(2, time.Minute), tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *apperrors.DomainError
			if errors.As(err, &de) {
				return c.Status(de.HTTPStatus).SendString(de.Code)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Use(NewGateMiddleware(gate, zap.NewNop(), observability.NewMetrics()).Handle)
	app.Post("/api/auth/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/api/v1/me", RequireIdentity(), func(c *fiber.Ctx) error {
		fromLocals, _ := IdentityFromContext(c)
		fromCtx, ok := domain.IdentityFromContext(c.UserContext())
		if !ok || fromCtx != fromLocals {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.SendString(fromLocals.Subject)
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestGateMiddlewareAttachesIdentity(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	app := newGateApp(t, tm)
	token, _, err := tm.GenerateToken("alice", "Alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, body := do(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body)
}

func TestGateMiddlewareRejections(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	app := newGateApp(t, tm)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthorized, body)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	status, body = do(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeInvalidToken, body)
}

func TestGateMiddlewareRateLimitsByForwardedFor(t *testing.T) {
	app := newGateApp(t, NewTokenManager(testSecret, time.Hour))

	login := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", xff)
		status, _ := do(t, app, req)
		return status
	}

	assert.Equal(t, http.StatusOK, login("203.0.113.1"))
	assert.Equal(t, http.StatusOK, login("203.0.113.1, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, login("203.0.113.1"))
	assert.Equal(t, http.StatusOK, login("203.0.113.2"))
}
