package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// CreateGroupHandler creates a group with the caller as first admin.
// POST /groups/create
func CreateGroupHandler(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	groupUuid, err := service.Svc.Group.CreateGroup(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"group_uuid": groupUuid})
}

// UpdateGroupHandler edits group name, avatar, or theme. Admin only.
// POST /groups/update
func UpdateGroupHandler(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.UpdateGroup(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteGroupHandler dissolves a group. Admin only.
// POST /groups/delete
func DeleteGroupHandler(c *gin.Context) {
	var req request.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.DeleteGroup(c.Request.Context(), req.UserId, req.GroupUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AddGroupMemberHandler adds a member. Admin only.
// POST /groups/members/add
func AddGroupMemberHandler(c *gin.Context) {
	var req request.GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.AddMember(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveGroupMemberHandler removes a member; admins anyone, members
// only themselves.
// POST /groups/members/remove
func RemoveGroupMemberHandler(c *gin.Context) {
	var req request.GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.RemoveMember(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// PromoteAdminHandler grants admin rights. Admin only.
// POST /groups/members/promote
func PromoteAdminHandler(c *gin.Context) {
	var req request.GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.PromoteAdmin(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RevokeAdminHandler revokes admin rights; the last admin stays.
// POST /groups/members/revoke
func RevokeAdminHandler(c *gin.Context) {
	var req request.GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.RevokeAdmin(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MuteGroupHandler toggles notification muting on the caller's membership.
// POST /groups/mute
func MuteGroupHandler(c *gin.Context) {
	var req request.MuteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.SetMuted(c.Request.Context(), req.UserId, req.GroupUuid, req.Muted); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// NotifyGroupMembersHandler sends a free-text group notice.
// POST /groups/notify
func NotifyGroupMembersHandler(c *gin.Context) {
	var req request.NotifyGroupMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Group.NotifyMembers(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetGroupsHandler lists the caller's groups.
// GET /groups?user_id=xxx
func GetGroupsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Group.GetGroups(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMembersHandler lists a group's members. Members only.
// GET /groups/members?user_id=xxx&group_uuid=yyy
func GetGroupMembersHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Group.GetMembers(c.Request.Context(), userId, c.Query("group_uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
