package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", middleware.JWTAuth(), handler.WsConnectHandler)
}
