package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mauledji/cariss/internal/api/dto"
	"github.com/mauledji/cariss/internal/security"
	"github.com/mauledji/cariss/internal/service"
)

// AuthHandler exposes login and registration.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	clientKey := security.ClientKey(c.Get(fiber.HeaderXForwardedFor), c.Context().RemoteAddr().String())
	result, err := h.auth.Login(c.UserContext(), req.UsernameOrEmail, req.Password, clientKey)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		Username:  result.Username,
		FullName:  result.FullName,
		ExpiresAt: result.ExpiresAt,
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		FullName: req.UserFullName,
		Email:    req.UserEmail,
		Password: req.UserPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.RegisterResponse{
		Message:  "User registered successfully",
		Username: user.Username,
	})
}
