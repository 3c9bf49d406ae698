package model

import "gorm.io/gorm"

// Friendship is one direction of a symmetric friendship. A friendship
// between A and B always exists as two rows (A→B and B→A), created and
// removed together inside one transaction. The per-direction attributes
// (nickname override, mute, theme) belong to the owner only.
type Friendship struct {
	gorm.Model
	OwnerId            string `gorm:"column:owner_id;index:idx_owner_friend,unique;type:char(20);not null"`
	FriendId           string `gorm:"column:friend_id;index;index:idx_owner_friend,unique;type:char(20);not null"`
	Nickname           string `gorm:"column:nickname;type:varchar(50);comment:empty means use the friend's full name"`
	NotificationsMuted bool   `gorm:"column:notifications_muted;not null;default:false"`
	ChatTheme          string `gorm:"column:chat_theme;type:varchar(30)"`
}

func (Friendship) TableName() string {
	return "friendship"
}
