package respond

// GroupRespond is one group the caller belongs to.
type GroupRespond struct {
	GroupUuid          string `json:"group_uuid"`
	Name               string `json:"name"`
	Avatar             string `json:"avatar"`
	ChatTheme          string `json:"chat_theme"`
	MemberCount        int64  `json:"member_count"`
	IsAdmin            bool   `json:"is_admin"`
	NotificationsMuted bool   `json:"notifications_muted"`
}

// GroupMemberRespond is one member of a group detail view.
type GroupMemberRespond struct {
	UserUuid    string `json:"user_uuid"`
	DisplayName string `json:"display_name"`
	TagName     string `json:"tag_name"`
	Avatar      string `json:"avatar"`
	IsAdmin     bool   `json:"is_admin"`
	Status      int8   `json:"status"`
}
