package respond

// RelationshipRespond is one inbox row: a private contact or group with
// at least one message visible to the caller, newest thread first.
type RelationshipRespond struct {
	IsGroup            bool   `json:"is_group"`
	CounterpartId      string `json:"counterpart_id"`
	DisplayName        string `json:"display_name"`
	Avatar             string `json:"avatar"`
	LastMessage        string `json:"last_message"`
	LastMessageTime    string `json:"last_message_time"`
	IsSentByUser       bool   `json:"is_sent_by_user"`
	HasNewMessage      bool   `json:"has_new_message"`
	NotificationsMuted bool   `json:"notifications_muted"`
	ChatTheme          string `json:"chat_theme"`
}

// Recipient info variants.
const (
	RecipientSelf    = "Self"
	RecipientPrivate = "Private"
	RecipientGroup   = "Group"
)

// RecipientInfoRespond describes the other side of a thread. Type selects
// which fields are meaningful: Self and Private carry user fields, Group
// carries MemberCount instead of presence.
type RecipientInfoRespond struct {
	Type        string `json:"type"`
	Id          string `json:"id"`
	DisplayName string `json:"display_name"`
	Nickname    string `json:"nickname,omitempty"`
	TagName     string `json:"tag_name,omitempty"`
	Avatar      string `json:"avatar"`
	Status      int8   `json:"status"`
	ChatTheme   string `json:"chat_theme,omitempty"`
	MemberCount int64  `json:"member_count,omitempty"`
}
