package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/optivista/backend/internal/application/identity"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// UserHandler handles admin user management requests
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers admin user management routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/admin/users", middleware.RequireAdmin())
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.POST("/:id/activate", h.ActivateUser)
		users.POST("/:id/deactivate", h.DeactivateUser)
		users.POST("/:id/unlock", h.UnlockUser)
		users.POST("/:id/reset-password", h.ResetPassword)
	}
}

// CreateUserRequest is the request body for admin user creation
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=32"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"omitempty,max=64"`
	Role        string `json:"role" binding:"required,oneof=customer seller admin"`
}

// UpdateUserRequest is the request body for admin user update
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=64"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Role        *string `json:"role" binding:"omitempty,oneof=customer seller admin"`
}

// ResetPasswordRequest is the request body for an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ListUsers returns a page of user accounts
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Normalize()

	input := identityapp.ListUsersInput{
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if status := c.Query("status"); status != "" {
		s := identity.UserStatus(status)
		input.Status = &s
	}
	if role := c.Query("role"); role != "" {
		r := identity.Role(role)
		input.Role = &r
	}

	result, err := h.userService.ListUsers(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users := make([]UserResponse, len(result.Users))
	for i, u := range result.Users {
		users[i] = toUserResponse(u)
	}
	h.SuccessWithMeta(c, users, result.Total, result.Page, result.PageSize)
}

// CreateUser creates an account with an explicit role
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), identityapp.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUserResponse(*user))
}

// GetUser returns a single user account
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*user))
}

// UpdateUser updates a user's profile or role
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input := identityapp.UpdateUserInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	}
	if req.Role != nil {
		r := identity.Role(*req.Role)
		input.Role = &r
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*user))
}

// ActivateUser re-activates a deactivated account
func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.transition(c, h.userService.ActivateUser, "User activated")
}

// DeactivateUser deactivates an account
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	h.transition(c, h.userService.DeactivateUser, "User deactivated")
}

// UnlockUser clears a login lockout
func (h *UserHandler) UnlockUser(c *gin.Context) {
	h.transition(c, h.userService.UnlockUser, "User unlocked")
}

// ResetPassword sets a new password for a user
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password reset successfully"})
}

func (h *UserHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := fn(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": message})
}
