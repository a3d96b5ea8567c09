package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the auth gate stores the caller identity under
const UserIDKey = "user_id"

// Auth is the authentication gate: it maps a bearer token to a user identity
// and rejects everything else before any pipeline logic runs. An empty token
// table disables the gate; every request then runs as "anonymous".
func Auth(tokens map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(tokens) == 0 {
			c.Set(UserIDKey, "anonymous")
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, ok := tokens[token]
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user identity set by Auth
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
