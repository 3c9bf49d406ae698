package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterGroupRoutes(r *gin.Engine) {
	groups := r.Group("/groups", middleware.JWTAuth())
	{
		groups.GET("", handler.GetGroupsHandler)
		groups.GET("/members", handler.GetGroupMembersHandler)

		groups.POST("/create", handler.CreateGroupHandler)
		groups.POST("/update", handler.UpdateGroupHandler)
		groups.POST("/delete", handler.DeleteGroupHandler)
		groups.POST("/members/add", handler.AddGroupMemberHandler)
		groups.POST("/members/remove", handler.RemoveGroupMemberHandler)
		groups.POST("/members/promote", handler.PromoteAdminHandler)
		groups.POST("/members/revoke", handler.RevokeAdminHandler)
		groups.POST("/mute", handler.MuteGroupHandler)
		groups.POST("/notify", handler.NotifyGroupMembersHandler)
	}
}
