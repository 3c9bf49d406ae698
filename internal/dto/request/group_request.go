package request

// CreateGroupRequest creates a group with the caller as initial admin.
type CreateGroupRequest struct {
	UserId      string   `json:"user_id" binding:"required"`
	Name        string   `json:"name" binding:"required,max=64"`
	Avatar      string   `json:"avatar"`
	MemberUuids []string `json:"member_uuids"`
}

// UpdateGroupRequest renames a group or changes its avatar or theme.
// Admin only.
type UpdateGroupRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	GroupUuid string `json:"group_uuid" binding:"required"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	ChatTheme string `json:"chat_theme"`
}

// DeleteGroupRequest dissolves a group and its messages. Admin only.
type DeleteGroupRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	GroupUuid string `json:"group_uuid" binding:"required"`
}

// GroupMemberRequest targets one member of a group: add, remove,
// promote, or revoke admin.
type GroupMemberRequest struct {
	UserId     string `json:"user_id" binding:"required"`
	GroupUuid  string `json:"group_uuid" binding:"required"`
	MemberUuid string `json:"member_uuid" binding:"required"`
}

// MuteGroupRequest toggles notification muting for the caller's own
// membership.
type MuteGroupRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	GroupUuid string `json:"group_uuid" binding:"required"`
	Muted     bool   `json:"muted"`
}

// NotifyGroupMembersRequest sends a free-text notice about a group.
type NotifyGroupMembersRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	GroupUuid string `json:"group_uuid" binding:"required"`
	Message   string `json:"message" binding:"required"`
}
