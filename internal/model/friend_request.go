package model

import (
	"time"

	"gorm.io/gorm"
)

// Friend request states.
const (
	RequestPending  int8 = 0
	RequestAccepted int8 = 1
	RequestRejected int8 = 2
)

// FriendRequest is a pending invitation from sender to receiver. At most one
// pending row may exist per ordered (sender, receiver) pair; resolving a
// request (accept, reject, cancel, block) deletes the row.
type FriendRequest struct {
	gorm.Model
	Uuid        string    `gorm:"column:uuid;uniqueIndex;type:char(20);comment:request uuid (F-prefixed)"`
	SenderId    string    `gorm:"column:sender_id;index:idx_sender_receiver,unique;type:char(20);not null"`
	ReceiverId  string    `gorm:"column:receiver_id;index;index:idx_sender_receiver,unique;type:char(20);not null"`
	Status      int8      `gorm:"column:status;not null;comment:0.pending 1.accepted 2.rejected"`
	RequestDate time.Time `gorm:"column:request_date;not null"`
}

func (FriendRequest) TableName() string {
	return "friend_request"
}
