// File: middleware/role.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose token role is not in the allowed
// set. Must run after JWTAuthMiddleware.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxRole)
		role, _ := roleVal.(string)
		if !exists || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Role missing from credentials",
			})
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient role for this endpoint",
		})
	}
}
