package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
)

func RegisterFriendRoutes(r *gin.Engine) {
	friends := r.Group("/friends", middleware.JWTAuth())
	{
		friends.GET("", handler.GetFriendsHandler)
		friends.GET("/requests", handler.GetPendingRequestsHandler)
		friends.GET("/requests/sent", handler.GetSentRequestsHandler)
		friends.GET("/blocked", handler.GetBlockedUsersHandler)

		friends.POST("/add", handler.AddFriendHandler)
		friends.POST("/accept", handler.AcceptFriendRequestHandler)
		friends.POST("/reject", handler.RejectFriendRequestHandler)
		friends.POST("/cancel", handler.CancelFriendRequestHandler)
		friends.POST("/remove", handler.RemoveFriendHandler)
		friends.POST("/block", handler.BlockUserHandler)
		friends.POST("/unblock", handler.UnblockUserHandler)
		friends.POST("/nickname", handler.SetNicknameHandler)
		friends.POST("/mute", handler.MuteFriendHandler)
		friends.POST("/theme", handler.SetFriendThemeHandler)
	}
}
