package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Middleware rejects requests without a valid bearer token and stores the
// caller's user id in the gin context.
func Middleware(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated caller's id set by Middleware.
func UserID(c *gin.Context) uint {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(uint)
	return uid
}
