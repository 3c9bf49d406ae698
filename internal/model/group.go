package model

import "gorm.io/gorm"

// Group is a chat group. Membership lives in GroupMember; a group is deleted,
// along with its messages, when its last member leaves.
type Group struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:group uuid (G-prefixed)"`
	Name      string `gorm:"column:name;type:varchar(50);not null"`
	Avatar    string `gorm:"column:avatar;type:varchar(255)"`
	ChatTheme string `gorm:"column:chat_theme;type:varchar(30)"`
}

func (Group) TableName() string {
	return "group_info"
}
