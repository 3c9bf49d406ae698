package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterMessageRoutes(r *gin.Engine) {
	chats := r.Group("/chats", middleware.JWTAuth())
	{
		chats.GET("", handler.GetChatsHandler)
		chats.POST("/send", handler.SendMessageHandler)
		chats.POST("/read", handler.MarkReadHandler)
		chats.POST("/delete", handler.DeleteThreadHandler)
	}
}
