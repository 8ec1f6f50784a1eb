// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	KeyUserID      = "user_id"
	KeyRole        = "user_role"
	KeyStationCode = "station_code"
	KeySessionID   = "session_id"
)

// SessionChecker reports whether a station session is still live.
type SessionChecker interface {
	SessionActive(sessionID string) bool
}

// Authenticate verifies the bearer token and that the station session it
// was issued for has not ended, then puts the claims into the context.
func Authenticate(tokens *auth.TokenManager, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if !sessions.SessionActive(claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has ended, please log in again"})
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyStationCode, claims.StationCode)
		c.Set(KeySessionID, claims.ID)

		c.Next()
	}
}

// Authorize lets the request through only for the given roles.
func Authorize(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(KeyRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role not found in context"})
			return
		}

		for _, role := range allowedRoles {
			if string(role) == userRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
