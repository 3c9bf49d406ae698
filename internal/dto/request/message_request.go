package request

// SendMessageRequest carries a private or group message. ReceiveId is a
// user uuid (U...) or group uuid (G...). Content may be empty only when
// an attachment is present.
type SendMessageRequest struct {
	SenderId      string `json:"sender_id" binding:"required"`
	ReceiveId     string `json:"receive_id" binding:"required"`
	Content       string `json:"content"`
	AttachmentUrl string `json:"attachment_url"`
	FileType      string `json:"file_type"`
	FileName      string `json:"file_name"`
}

// GetChatsRequest fetches one thread's message history, tombstoned
// messages excluded.
type GetChatsRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	ReceiveId string `json:"receive_id" binding:"required"`
}

// MarkReadRequest marks a whole private thread, or one group message,
// as read by the caller.
type MarkReadRequest struct {
	UserId      string `json:"user_id" binding:"required"`
	ReceiveId   string `json:"receive_id" binding:"required"`
	MessageUuid int64  `json:"message_uuid,string"`
}

// DeleteThreadRequest tombstones every message of one thread for the
// caller only.
type DeleteThreadRequest struct {
	UserId    string `json:"user_id" binding:"required"`
	ReceiveId string `json:"receive_id" binding:"required"`
}
