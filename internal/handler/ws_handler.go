package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
)

// WsConnectHandler upgrades to WebSocket and registers the session. The
// socket is push-only; the hub's register/unregister path flips presence.
// GET /ws (JWT protected)
func WsConnectHandler(c *gin.Context) {
	userId := authedUserId(c)
	if err := chat.NewClientInit(c, service.Svc.Hub, userId); err != nil {
		// The upgrade already wrote the HTTP error response.
		return
	}
}
