package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/domain/shared"
)

// UserService handles admin-facing user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a user with an explicit role (admin only)
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Username, input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("USERNAME_TAKEN", "Username or email is already taken")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	info := NewUserInfo(user)
	return &info, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers returns a page of users matching the filter
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*UserListResult, error) {
	filter := identity.NewUserFilter().
		WithKeyword(input.Keyword).
		WithPagination(input.Page, input.PageSize).
		WithSort(input.SortBy, input.SortOrder)
	if input.Status != nil {
		filter = filter.WithStatus(*input.Status)
	}
	if input.Role != nil {
		filter = filter.WithRole(*input.Role)
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, NewUserInfo(u))
	}

	return &UserListResult{
		Users:    infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateUser updates a user's profile or role (admin only)
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := user.SetRole(*input.Role); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
		}
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// ActivateUser reactivates a deactivated or locked user
func (s *UserService) ActivateUser(ctx context.Context, userID uuid.UUID) error {
	return s.transition(ctx, userID, func(u *identity.User) error { return u.Activate() })
}

// DeactivateUser deactivates a user account
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	return s.transition(ctx, userID, func(u *identity.User) error { return u.Deactivate() })
}

// UnlockUser clears a login lock
func (s *UserService) UnlockUser(ctx context.Context, userID uuid.UUID) error {
	return s.transition(ctx, userID, func(u *identity.User) error { return u.Unlock() })
}

// ResetPassword sets a new password without the old one (admin only)
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return s.transition(ctx, userID, func(u *identity.User) error { return u.SetPassword(newPassword) })
}

func (s *UserService) transition(ctx context.Context, userID uuid.UUID, fn func(*identity.User) error) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := fn(user); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}
	return nil
}
