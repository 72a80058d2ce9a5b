package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/middleware"
	"github.com/classboard/classboard/internal/pkg/response"
)

type RouterDeps struct {
	Auth       *AuthHandler
	ResetLimit gin.HandlerFunc
	JWTSecret  []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	api.POST("/signup", deps.Auth.Signup)
	api.POST("/login", deps.Auth.Login)
	api.POST("/request-reset", deps.ResetLimit, deps.Auth.RequestReset)
	api.POST("/verify-reset", deps.Auth.VerifyReset)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/protected", deps.Auth.Protected)
}
