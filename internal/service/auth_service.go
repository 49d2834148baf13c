package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mauledji/cariss/internal/domain"
	"github.com/mauledji/cariss/internal/events"
	"github.com/mauledji/cariss/internal/repository"
	"github.com/mauledji/cariss/internal/security"
	apperrors "github.com/mauledji/cariss/pkg/util"
)

const (
	msgUsernameExists = "Username already exists"
	msgEmailExists    = "Email already exists"
)

// PasswordHasher hashes and verifies stored passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(plain, hashed string) (bool, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(subject, fullName string) (string, time.Time, error)
}

// PasswordPolicy decides whether a new password is strong enough.
type PasswordPolicy interface {
	IsAcceptable(password string) bool
	DescribeRequirements() string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	attempts security.LoginAttemptTracker
	policy   PasswordPolicy
	events   events.Dispatcher
	logger   *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
// Events and Logger are optional.
type AuthDependencies struct {
	Users    repository.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Attempts security.LoginAttemptTracker
	Policy   PasswordPolicy
	Events   events.Dispatcher
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    deps.Users,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		attempts: deps.Attempts,
		policy:   deps.Policy,
		events:   deps.Events,
		logger:   logger,
	}
}

// RegisterInput carries a new account's fields.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

// Login authenticates identifier, which may be a username or an email.
// Every credential failure yields the same error so callers cannot tell
// unknown accounts from wrong passwords. Failures are counted against the
// identifier as typed, and only when it resolves to an account.
func (s *AuthService) Login(ctx context.Context, identifier, password, clientKey string) (*domain.LoginResult, error) {
	locked, err := s.attempts.IsLocked(ctx, identifier)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if locked {
		s.logger.Warn("login rejected for locked account", zap.String("client", clientKey))
		s.publish(ctx, events.NewEvent(events.EventLoginLocked, identifier, clientKey, nil))
		return nil, apperrors.NewAccountLocked()
	}

	user, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, identifier, clientKey,
			events.LoginFailedPayload{Reason: "unknown_identifier"}))
		return nil, apperrors.NewInvalidCredentials()
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !ok {
		count, err := s.attempts.RecordFailure(ctx, identifier)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, identifier, clientKey,
			events.LoginFailedPayload{Reason: "bad_password", FailureCount: count}))
		return nil, apperrors.NewInvalidCredentials()
	}

	if err := s.attempts.Clear(ctx, identifier); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.Username, user.FullName)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, user.Username, clientKey, nil))
	return &domain.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		FullName:  user.FullName,
	}, nil
}

// Register creates a new account after the password policy and uniqueness
// checks pass.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if !s.policy.IsAcceptable(in.Password) {
		return nil, apperrors.NewValidationError(s.policy.DescribeRequirements(), nil)
	}

	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewValidationError(msgUsernameExists, nil)
	}

	exists, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewValidationError(msgEmailExists, nil)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.Username, "",
		events.UserRegisteredPayload{UserID: user.ID}))
	return user, nil
}

// resolve looks identifier up as a username first, then as an email.
func (s *AuthService) resolve(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if err != nil || user != nil {
		return user, err
	}
	return s.users.FindByEmail(ctx, identifier)
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("audit handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// mapUserWriteError turns uniqueness races caught by the store into the same
// messages the pre-checks produce.
func mapUserWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return apperrors.NewValidationError(msgUsernameExists, nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.NewValidationError(msgEmailExists, nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("user", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
