package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// SendMessageHandler persists a message and pushes it to its audience.
// POST /chats/send
func SendMessageHandler(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.SenderId) {
		return
	}
	data, err := service.Svc.Message.SendMessage(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetChatsHandler returns one thread's history for the caller.
// GET /chats?user_id=xxx&receive_id=yyy
func GetChatsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Message.GetChats(c.Request.Context(), userId, c.Query("receive_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkReadHandler marks a private thread, or one group message, as read.
// POST /chats/read
func MarkReadHandler(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	ctx := c.Request.Context()
	var err error
	if len(req.ReceiveId) > 0 && req.ReceiveId[0] == 'G' {
		err = service.Svc.Message.MarkGroupMessageRead(ctx, req.UserId, req.MessageUuid)
	} else {
		err = service.Svc.Message.MarkPrivateThreadRead(ctx, req.UserId, req.ReceiveId)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteThreadHandler tombstones a thread for the caller only.
// POST /chats/delete
func DeleteThreadHandler(c *gin.Context) {
	var req request.DeleteThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Message.DeleteThread(c.Request.Context(), req.UserId, req.ReceiveId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
