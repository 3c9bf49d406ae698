package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// AddFriendHandler sends a friend request (or auto-accepts a reciprocal one).
// POST /friends/add
func AddFriendHandler(c *gin.Context) {
	var req request.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.AddFriend(c.Request.Context(), req.UserId, req.FriendId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AcceptFriendRequestHandler accepts a pending request.
// POST /friends/accept
func AcceptFriendRequestHandler(c *gin.Context) {
	var req request.HandleFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.AcceptFriendRequest(c.Request.Context(), req.UserId, req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RejectFriendRequestHandler rejects a pending request (receiver side).
// POST /friends/reject
func RejectFriendRequestHandler(c *gin.Context) {
	var req request.HandleFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.RejectFriendRequest(c.Request.Context(), req.UserId, req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CancelFriendRequestHandler withdraws a pending request (sender side).
// POST /friends/cancel
func CancelFriendRequestHandler(c *gin.Context) {
	var req request.HandleFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.CancelFriendRequest(c.Request.Context(), req.UserId, req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveFriendHandler deletes the friendship in both directions.
// POST /friends/remove
func RemoveFriendHandler(c *gin.Context) {
	var req request.RemoveFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.RemoveFriend(c.Request.Context(), req.UserId, req.FriendId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// BlockUserHandler blocks a user.
// POST /friends/block
func BlockUserHandler(c *gin.Context) {
	var req request.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.BlockUser(c.Request.Context(), req.UserId, req.BlockedId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UnblockUserHandler lifts a block.
// POST /friends/unblock
func UnblockUserHandler(c *gin.Context) {
	var req request.UnblockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.UnblockUser(c.Request.Context(), req.UserId, req.BlockedId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SetNicknameHandler overrides a friend's display name for the caller.
// POST /friends/nickname
func SetNicknameHandler(c *gin.Context) {
	var req request.SetNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.SetNickname(c.Request.Context(), req.UserId, req.FriendId, req.Nickname); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MuteFriendHandler toggles notification muting for one friend.
// POST /friends/mute
func MuteFriendHandler(c *gin.Context) {
	var req request.MuteFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.SetMuted(c.Request.Context(), req.UserId, req.FriendId, req.Muted); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SetFriendThemeHandler sets a private thread's chat theme.
// POST /friends/theme
func SetFriendThemeHandler(c *gin.Context) {
	var req request.SetFriendThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if !requireSelf(c, req.UserId) {
		return
	}
	if err := service.Svc.Friend.SetChatTheme(c.Request.Context(), req.UserId, req.FriendId, req.Theme); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetFriendsHandler lists the caller's friends.
// GET /friends?user_id=xxx
func GetFriendsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Friend.GetFriends(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPendingRequestsHandler lists incoming pending requests.
// GET /friends/requests?user_id=xxx
func GetPendingRequestsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Friend.GetPendingRequests(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetSentRequestsHandler lists outgoing pending requests.
// GET /friends/requests/sent?user_id=xxx
func GetSentRequestsHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Friend.GetSentRequests(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetBlockedUsersHandler lists the caller's block list.
// GET /friends/blocked?user_id=xxx
func GetBlockedUsersHandler(c *gin.Context) {
	userId := c.Query("user_id")
	if !requireSelf(c, userId) {
		return
	}
	data, err := service.Svc.Friend.GetBlockedUsers(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
