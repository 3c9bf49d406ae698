package request

// AddFriendRequest creates a pending friend request, or completes the
// friendship immediately when a reciprocal pending request exists.
type AddFriendRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
}

// HandleFriendRequestRequest accepts, rejects, or cancels a pending
// request identified by its uuid. Accept/reject are receiver operations,
// cancel is the sender's.
type HandleFriendRequestRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	RequestId string `json:"request_id" binding:"required"`
}

// RemoveFriendRequest deletes the friendship in both directions.
type RemoveFriendRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
}

// BlockUserRequest blocks another user, severing any friendship and
// pending requests between the pair.
type BlockUserRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	BlockedId string `json:"blocked_id" binding:"required"`
}

// UnblockUserRequest lifts an existing block.
type UnblockUserRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	BlockedId string `json:"blocked_id" binding:"required"`
}

// SetNicknameRequest overrides the display name the owner sees for one
// friend. An empty nickname clears the override.
type SetNicknameRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
	Nickname string `json:"nickname"`
}

// MuteFriendRequest toggles notification muting for one friend.
type MuteFriendRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
	Muted    bool   `json:"muted"`
}

// SetFriendThemeRequest sets the chat theme for one private thread.
type SetFriendThemeRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
	Theme    string `json:"theme" binding:"required"`
}
