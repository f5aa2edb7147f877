package middleware

import (
	"net/http"
	"strings"

	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextEmailKey = "authEmail"
	ContextRoleKey  = "authRole"
)

// AuthRequired verifies the bearer ID token with the identity provider and
// stores the caller's email in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.GetAuthClient().VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}

// AuthedEmail returns the authenticated caller's email from the context.
func AuthedEmail(c *gin.Context) string {
	return c.GetString(ContextEmailKey)
}

// AuthedRole returns the caller's resolved role, set by RequireRole.
func AuthedRole(c *gin.Context) string {
	return c.GetString(ContextRoleKey)
}
