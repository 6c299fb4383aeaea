// File: middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shuttle/utils"
)

// Context keys set by the auth middleware.
const (
	CtxPrincipalID = "principalID"
	CtxRole        = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity and role in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(CtxPrincipalID, subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// PrincipalID returns the authenticated caller's ID from the context.
func PrincipalID(c *gin.Context) string {
	id, _ := c.Get(CtxPrincipalID)
	s, _ := id.(string)
	return s
}
