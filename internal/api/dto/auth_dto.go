package dto

import "time"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest payload for POST /api/auth/register. The password is
// checked by the password policy, not by tags.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,max=64"`
	UserFullName string `json:"userFullName" validate:"max=128"`
	UserEmail    string `json:"userEmail" validate:"required,email,max=254"`
	UserPassword string `json:"userPassword"`
}

// RegisterResponse acknowledges a new account.
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
