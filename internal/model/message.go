package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Message is a chat message, private or group. ReceiveId is a user uuid
// (U-prefixed) for private messages and a group uuid (G-prefixed) for group
// messages, so a message always targets exactly one of the two.
//
// Private messages carry a single IsRead/ReadAt; group messages track read
// state per reader via MessageReadStatus. Either Content or AttachmentUrl
// must be non-empty (enforced at the service layer).
type Message struct {
	gorm.Model
	Uuid          int64        `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:snowflake id"`
	SenderId      string       `gorm:"column:sender_id;index;type:char(20);not null"`
	ReceiveId     string       `gorm:"column:receive_id;index;type:char(20);not null;comment:user uuid or group uuid"`
	Content       string       `gorm:"column:content;type:text"`
	AttachmentUrl string       `gorm:"column:attachment_url;type:varchar(255)"`
	FileType      string       `gorm:"column:file_type;type:varchar(50)"`
	FileName      string       `gorm:"column:file_name;type:varchar(100)"`
	SentAt        time.Time    `gorm:"column:sent_at;index;not null"`
	IsRead        bool         `gorm:"column:is_read;not null;default:false;comment:private messages only"`
	ReadAt        sql.NullTime `gorm:"column:read_at"`
}

func (Message) TableName() string {
	return "message"
}

// IsGroupMessage reports whether the message targets a group.
func (m *Message) IsGroupMessage() bool {
	return len(m.ReceiveId) > 0 && m.ReceiveId[0] == 'G'
}
