package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/identity"
)

// RegisterInput contains the input for self-registration. Role is optional
// and limited to customer or seller; empty defaults to customer.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        identity.Role
}

// LoginInput contains the input for user login.
// Identifier accepts either a username or an email address.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains user information returned to clients
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	Email       string
	DisplayName string
	Role        identity.Role
	Status      identity.UserStatus
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// NewUserInfo maps a domain user to its client representation
func NewUserInfo(user *identity.User) UserInfo {
	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Username
	}
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: displayName,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput contains the input for profile update
type UpdateProfileInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Email       *string
}

// CreateUserInput contains the input for admin user creation
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        identity.Role
}

// UpdateUserInput contains the input for admin user update
type UpdateUserInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Email       *string
	Role        *identity.Role
}

// ListUsersInput contains filters for listing users
type ListUsersInput struct {
	Keyword   string
	Status    *identity.UserStatus
	Role      *identity.Role
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UserListResult contains a page of users
type UserListResult struct {
	Users    []UserInfo
	Total    int64
	Page     int
	PageSize int
}
