package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
)

// AuthMW wraps the token service and user repository for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.userRepo)
}
