package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photogrid/identity/internal/models"
)

// RequirePermissions gates a route on the authenticated user's permission
// level. Must run after Auth.
func RequirePermissions(perms ...models.Permissions) gin.HandlerFunc {
	permSet := make(map[models.Permissions]struct{}, len(perms))
	for _, perm := range perms {
		permSet[perm] = struct{}{}
	}

	return func(c *gin.Context) {
		userVal, exists := c.Get(ContextUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, ok := userVal.(models.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_user"})
			return
		}

		if _, ok := permSet[user.Permissions]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_permissions"})
			return
		}

		c.Next()
	}
}
