package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
)

// ContextUserKey is the gin context key holding the authenticated user
const ContextUserKey = "auth_user"

// AuthMiddleware creates authentication middleware. It verifies the bearer
// access token statelessly, then resolves the user from the identity store;
// either failure yields 401.
func AuthMiddleware(tokenSvc domain.TokenService, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser extracts the authenticated user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
