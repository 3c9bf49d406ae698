package respond

// FriendRespond is one entry of the caller's friend list. DisplayName
// already resolves the nickname override.
type FriendRespond struct {
	FriendId           string `json:"friend_id"`
	DisplayName        string `json:"display_name"`
	Nickname           string `json:"nickname"`
	TagName            string `json:"tag_name"`
	Avatar             string `json:"avatar"`
	Status             int8   `json:"status"`
	NotificationsMuted bool   `json:"notifications_muted"`
	ChatTheme          string `json:"chat_theme"`
}

// FriendRequestRespond is one pending request. DisplayName, TagName, and
// Avatar describe the other party: the sender for incoming requests, the
// receiver for outgoing ones.
type FriendRequestRespond struct {
	RequestId   string `json:"request_id"`
	SenderId    string `json:"sender_id"`
	ReceiverId  string `json:"receiver_id"`
	DisplayName string `json:"display_name"`
	TagName     string `json:"tag_name"`
	Avatar      string `json:"avatar"`
	SentAt      string `json:"sent_at"`
}

// BlockedUserRespond is one entry of the caller's block list.
type BlockedUserRespond struct {
	BlockedId   string `json:"blocked_id"`
	DisplayName string `json:"display_name"`
	TagName     string `json:"tag_name"`
	Avatar      string `json:"avatar"`
	BlockedDate string `json:"blocked_date"`
}
