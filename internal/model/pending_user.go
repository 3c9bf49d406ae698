package model

import "gorm.io/gorm"

// PendingUser is an unconfirmed registration. A row is promoted to User when
// the confirmation code is presented; the cleanup job deletes rows older
// than the registration TTL.
type PendingUser struct {
	gorm.Model
	Username         string `gorm:"column:username;index;type:varchar(30);not null"`
	FirstName        string `gorm:"column:first_name;type:varchar(30);not null"`
	LastName         string `gorm:"column:last_name;type:varchar(30);not null"`
	TagName          string `gorm:"column:tag_name;type:varchar(32);not null"`
	Password         string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt hash"`
	ConfirmationCode string `gorm:"column:confirmation_code;index;type:char(6);not null"`
}

func (PendingUser) TableName() string {
	return "pending_user"
}
