package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// GetUserInfoHandler returns one user's public profile.
// GET /user/:uuid
func GetUserInfoHandler(c *gin.Context) {
	data, err := service.Svc.User.GetUserInfo(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SearchUserHandler finds a user by tag name.
// GET /user/search?tag_name=xxx
func SearchUserHandler(c *gin.Context) {
	tagName := c.Query("tag_name")
	if tagName == "" {
		HandleParamError(c, nil)
		return
	}
	data, err := service.Svc.User.SearchByTagName(c.Request.Context(), tagName)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserInfoHandler edits the caller's own profile.
// POST /user/update
func UpdateUserInfoHandler(c *gin.Context) {
	var req request.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.User.UpdateUserInfo(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
