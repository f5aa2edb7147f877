package middleware

import (
	"net/http"

	userRepo "styledecor/database/repository/user"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// resolveRole looks up the caller's role through the redis role cache,
// falling back to the user store.
func resolveRole(c *gin.Context, users userRepo.UserRepository, email string) (string, error) {
	ctx := c.Request.Context()
	if role := utils.CachedRole(ctx, email); role != "" {
		return role, nil
	}
	role, err := users.RoleOf(ctx, email)
	if err != nil {
		return "", err
	}
	utils.CacheRole(ctx, email, role)
	return role, nil
}

// ResolveRole stores the caller's role in the request context without
// restricting access. Handlers that branch on ownership versus admin use it.
// Must run after AuthRequired.
func ResolveRole(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := AuthedEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}
		role, err := resolveRole(c, users, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "failed to resolve role"})
			return
		}
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireRole is a composable authorization policy: it resolves the
// authenticated caller's role and rejects the request unless it matches one
// of the allowed roles. Must run after AuthRequired.
func RequireRole(users userRepo.UserRepository, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := AuthedEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		role, err := resolveRole(c, users, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "failed to resolve role"})
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Set(ContextRoleKey, role)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
	}
}
