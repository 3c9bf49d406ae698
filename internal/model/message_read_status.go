package model

import (
	"time"

	"gorm.io/gorm"
)

// MessageReadStatus is a per-reader read mark for a group message. The
// sender's row is written at send time, so "unread" for a member is simply
// the absence of their row.
type MessageReadStatus struct {
	gorm.Model
	MessageUuid int64     `gorm:"column:message_uuid;index:idx_message_user,unique;type:bigint;not null"`
	UserUuid    string    `gorm:"column:user_uuid;index;index:idx_message_user,unique;type:char(20);not null"`
	ReadAt      time.Time `gorm:"column:read_at;not null"`
}

func (MessageReadStatus) TableName() string {
	return "message_read_status"
}
