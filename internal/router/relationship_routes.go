package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterRelationshipRoutes(r *gin.Engine) {
	relationships := r.Group("/relationships", middleware.JWTAuth())
	{
		relationships.GET("", handler.GetRelationshipsHandler)
		relationships.GET("/recipient", handler.GetRecipientInfoHandler)
	}
}
