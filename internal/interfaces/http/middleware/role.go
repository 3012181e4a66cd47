package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/interfaces/http/dto"
)

// RequireRole aborts with 403 unless the authenticated user holds one of the
// given roles. It must run after JWTAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			requestID := c.GetString(RequestIDHeader)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", requestID))
			return
		}

		if _, ok := allowed[role]; !ok {
			requestID := c.GetString(RequestIDHeader)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient permissions", requestID))
			return
		}

		c.Next()
	}
}

// RequireAdmin is shorthand for RequireRole(identity.RoleAdmin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}

// IsAdmin reports whether the authenticated user is an admin
func IsAdmin(c *gin.Context) bool {
	return GetJWTRole(c) == string(identity.RoleAdmin)
}
