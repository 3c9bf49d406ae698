// Package model defines the database entities.
package model

import (
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Presence states stored in user_info.status.
const (
	StatusOffline int8 = 0
	StatusOnline  int8 = 1
)

// User roles.
const (
	RoleUser  int8 = 0
	RoleAdmin int8 = 1
)

// User is an account. The tag name is the public @handle; uniqueness is
// case-insensitive, enforced through the lower-cased shadow column because
// collation behaviour differs between MySQL deployments.
type User struct {
	gorm.Model
	Uuid         string       `gorm:"column:uuid;uniqueIndex;type:char(20);comment:user uuid (U-prefixed)"`
	Username     string       `gorm:"column:username;uniqueIndex;type:varchar(30);not null"`
	FirstName    string       `gorm:"column:first_name;type:varchar(30);not null"`
	LastName     string       `gorm:"column:last_name;type:varchar(30);not null"`
	TagName      string       `gorm:"column:tag_name;type:varchar(32);not null;comment:public @handle"`
	TagNameLower string       `gorm:"column:tag_name_lower;uniqueIndex;type:varchar(32);not null"`
	Avatar       string       `gorm:"column:avatar;type:varchar(255)"`
	Status       int8         `gorm:"column:status;not null;default:0;comment:presence 0.offline 1.online"`
	ShowStatus   bool         `gorm:"column:show_status;not null;default:true;comment:presence visible to others"`
	Role         int8         `gorm:"column:role;not null;default:0"`
	Password     string       `gorm:"column:password;type:varchar(100);not null"`
	LastOnlineAt sql.NullTime `gorm:"column:last_online_at"`

	// RawPassword receives the plaintext from the request and is hashed
	// in BeforeSave; it never reaches the database.
	RawPassword string `gorm:"-" json:"-"`
}

func (User) TableName() string {
	return "user_info"
}

// FullName is the display name used wherever no nickname override applies.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// VisibleStatus is the presence others see: offline whenever the user
// hides their status.
func (u *User) VisibleStatus() int8 {
	if !u.ShowStatus {
		return StatusOffline
	}
	return u.Status
}

// BeforeSave hashes RawPassword into Password and keeps TagNameLower in
// sync with TagName.
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	if u.TagName != "" {
		u.TagNameLower = strings.ToLower(u.TagName)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
