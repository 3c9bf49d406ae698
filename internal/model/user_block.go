package model

import (
	"time"

	"gorm.io/gorm"
)

// UserBlock records that owner has blocked blocked. Creating a block removes
// any friendship pair and pending requests between the two users; while the
// row exists, friend requests and private messages are rejected between them.
type UserBlock struct {
	gorm.Model
	OwnerId     string    `gorm:"column:owner_id;index:idx_owner_blocked,unique;type:char(20);not null"`
	BlockedId   string    `gorm:"column:blocked_id;index;index:idx_owner_blocked,unique;type:char(20);not null"`
	BlockedDate time.Time `gorm:"column:blocked_date;not null"`
}

func (UserBlock) TableName() string {
	return "user_block"
}
