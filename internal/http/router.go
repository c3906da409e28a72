package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/internal/http/handlers"
	"github.com/you/authsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/get-otp", ah.GetOTP)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	authed := r.Group("/auth").Use(jwtmw.WithJWT())
	authed.POST("/logout", ah.Logout)
	authed.GET("/account", ah.Account)
	authed.POST("/account", ah.UpdateAccount)
	authed.GET("/public-profiles", ah.PublicProfiles)

	return r
}
