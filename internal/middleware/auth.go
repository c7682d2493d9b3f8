package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KTee1986/mahjong-tracker/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// UserNameKey is the gin context key for the authenticated user name.
	UserNameKey = "user_name"
)

// UserID extracts the authenticated user ID from the gin context.
// Returns empty string if not set.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// UserName extracts the authenticated user name from the gin context.
// Returns empty string if not set.
func UserName(c *gin.Context) string {
	return c.GetString(UserNameKey)
}

// RequireAuth returns a middleware that validates Bearer tokens and
// aborts unauthenticated requests. Valid claims are copied into the
// request context so handlers never touch the token themselves.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserNameKey, claims.Name)
		c.Next()
	}
}
