package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterUserRoutes(r *gin.Engine) {
	user := r.Group("/user", middleware.JWTAuth())
	{
		user.GET("/search", handler.SearchUserHandler)
		user.GET("/:uuid", handler.GetUserInfoHandler)
		user.POST("/update", handler.UpdateUserInfoHandler)
	}
}
