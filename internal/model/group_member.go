package model

import "gorm.io/gorm"

// GroupMember links a user to a group. Invariant: a group with at least one
// member always has at least one admin; removing the last admin promotes an
// arbitrary remaining member.
type GroupMember struct {
	gorm.Model
	GroupUuid          string `gorm:"column:group_uuid;index:idx_group_user,unique;type:char(20);not null"`
	UserUuid           string `gorm:"column:user_uuid;index;index:idx_group_user,unique;type:char(20);not null"`
	IsAdmin            bool   `gorm:"column:is_admin;not null;default:false"`
	NotificationsMuted bool   `gorm:"column:notifications_muted;not null;default:false"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
