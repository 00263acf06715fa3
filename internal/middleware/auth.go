package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photogrid/identity/internal/models"
	"photogrid/identity/internal/security"
	"photogrid/identity/internal/service"
)

const (
	ContextUserKey  = "current_user"
	ContextTokenKey = "session_token"
)

// Auth resolves a Bearer session token to its owning user. Anything short of
// an active session and a loadable user aborts with 401; liveness fails
// closed.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		token := security.SessionToken(strings.TrimPrefix(authHeader, "Bearer "))

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_logged_in"})
			return
		}

		if user.Status != models.AccountStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_disabled"})
			return
		}

		c.Set(ContextTokenKey, token)
		c.Set(ContextUserKey, user)

		c.Next()
	}
}
