package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// setJWTContext seeds the gin context the way the JWT middleware does
func setJWTContext(c *gin.Context, userID uuid.UUID, username string, role identity.Role) {
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTUsernameKey, username)
	c.Set(middleware.JWTRoleKey, string(role))
}

// setupTestRouter creates a router with an authenticated test identity
func setupTestRouter(userID uuid.UUID, role identity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, userID, "testuser", role)
		c.Next()
	})
	return router
}

// decodeResponse parses the standard response envelope from a recorder
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
