package dto

import (
	"time"

	"github.com/mauledji/cariss/internal/domain"
)

// UserRequest payload for creating or updating a user. On update an empty
// password keeps the current one.
type UserRequest struct {
	Username     string `json:"username" validate:"required,max=64"`
	UserFullName string `json:"userFullName" validate:"max=128"`
	UserEmail    string `json:"userEmail" validate:"required,email,max=254"`
	UserPassword string `json:"userPassword"`
}

// UserResponse is the public view of an account. It never carries the hash.
type UserResponse struct {
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	UserFullName string    `json:"userFullName"`
	UserEmail    string    `json:"userEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.ID,
		Username:     u.Username,
		UserFullName: u.FullName,
		UserEmail:    u.Email,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of domain users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
