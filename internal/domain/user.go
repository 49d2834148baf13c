package domain

import "time"

// User is an account that can authenticate against the service.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
