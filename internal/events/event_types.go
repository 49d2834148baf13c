package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLoginLocked    EventType = "login_locked"
)

// Event represents a security-relevant action emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Identifier string      `json:"identifier"`
	ClientKey  string      `json:"client_key,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, identifier, clientKey string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Identifier: identifier,
		ClientKey:  clientKey,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	// Reason is "bad_password" or "unknown_identifier".
	Reason       string `json:"reason"`
	FailureCount int    `json:"failure_count,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64 `json:"user_id"`
}
