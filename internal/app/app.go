package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/internal/config"
	httpx "github.com/you/authsvc/internal/http"
	"github.com/you/authsvc/internal/http/handlers"
	"github.com/you/authsvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.OTPSvc)
	jwtMW := middleware.NewAuthMW(container.TokenSvc, container.UserRepo)

	r := httpx.BuildRouter(authH, jwtMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
