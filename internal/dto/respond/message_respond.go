package respond

// MessageRespond is one message as delivered over HTTP and in push
// payloads. Uuid serialises as a string because snowflake ids overflow
// JavaScript numbers.
type MessageRespond struct {
	Uuid           int64  `json:"uuid,string"`
	SenderId       string `json:"sender_id"`
	SenderFullName string `json:"sender_full_name"`
	ReceiveId      string `json:"receive_id"`
	Content        string `json:"content"`
	AttachmentUrl  string `json:"attachment_url"`
	FileType       string `json:"file_type"`
	FileName       string `json:"file_name"`
	SentAt         string `json:"sent_at"`
	IsRead         bool   `json:"is_read"`
}
