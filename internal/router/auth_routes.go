package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", handler.RegisterHandler)
		auth.POST("/confirm", handler.ConfirmRegisterHandler)
		auth.POST("/login", handler.LoginHandler)
		auth.POST("/refresh", handler.RefreshTokenHandler)
		auth.POST("/logout", middleware.JWTAuth(), handler.LogoutHandler)
	}
}
