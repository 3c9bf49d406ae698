package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// GetRelationshipsHandler returns the caller's inbox view: one entry per
// contact or group with visible messages, newest thread first.
// GET /relationships?user_id=xxx
func GetRelationshipsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Relationship.GetRelationships(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRecipientInfoHandler describes the other side of one thread.
// GET /relationships/recipient?user_id=xxx&recipient_id=yyy
func GetRecipientInfoHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Relationship.GetRecipientInfo(c.Request.Context(), userId, c.Query("recipient_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
