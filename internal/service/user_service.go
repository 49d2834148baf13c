package service

import (
	"context"

	"github.com/mauledji/cariss/internal/domain"
	"github.com/mauledji/cariss/internal/repository"
	apperrors "github.com/mauledji/cariss/pkg/util"
)

// UserService manages accounts for authenticated callers.
type UserService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	policy PasswordPolicy
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher PasswordHasher, policy PasswordPolicy) *UserService {
	return &UserService{users: users, hasher: hasher, policy: policy}
}

// UserInput carries writable account fields. An empty Password on update
// keeps the stored hash.
type UserInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	if !s.policy.IsAcceptable(in.Password) {
		return nil, apperrors.NewValidationError(s.policy.DescribeRequirements(), nil)
	}
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
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
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.FullName = in.FullName
	user.Email = in.Email
	if in.Password != "" {
		if !s.policy.IsAcceptable(in.Password) {
			return nil, apperrors.NewValidationError(s.policy.DescribeRequirements(), nil)
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapUserWriteError(err)
	}
	return nil
}
