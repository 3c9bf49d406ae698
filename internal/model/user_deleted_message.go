package model

import (
	"time"

	"gorm.io/gorm"
)

// UserDeletedMessage is a per-user tombstone. It hides the message from the
// owning user's views without deleting the row, so the other party's view of
// the same thread is unaffected.
type UserDeletedMessage struct {
	gorm.Model
	UserUuid    string    `gorm:"column:user_uuid;index:idx_user_message,unique;type:char(20);not null"`
	MessageUuid int64     `gorm:"column:message_uuid;index;index:idx_user_message,unique;type:bigint;not null"`
	DeletedDate time.Time `gorm:"column:deleted_date;not null"`
}

func (UserDeletedMessage) TableName() string {
	return "user_deleted_message"
}
