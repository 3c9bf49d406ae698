package mysql

import (
	"gorm.io/gorm"
)

// Repositories aggregates all repository instances. The service layer
// receives this struct and never touches *gorm.DB directly.
type Repositories struct {
	db             *gorm.DB
	User           UserRepository
	PendingUser    PendingUserRepository
	Friendship     FriendshipRepository
	FriendRequest  FriendRequestRepository
	UserBlock      UserBlockRepository
	Group          GroupRepository
	GroupMember    GroupMemberRepository
	Message        MessageRepository
	ReadStatus     ReadStatusRepository
	DeletedMessage DeletedMessageRepository
}

// NewRepositories wires every repository onto the given database handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		User:           NewUserRepository(db),
		PendingUser:    NewPendingUserRepository(db),
		Friendship:     NewFriendshipRepository(db),
		FriendRequest:  NewFriendRequestRepository(db),
		UserBlock:      NewUserBlockRepository(db),
		Group:          NewGroupRepository(db),
		GroupMember:    NewGroupMemberRepository(db),
		Message:        NewMessageRepository(db),
		ReadStatus:     NewReadStatusRepository(db),
		DeletedMessage: NewDeletedMessageRepository(db),
	}
}

// Transaction runs fn inside one database transaction. The compound state
// transitions of the friend state machine and group membership rely on this:
// either the whole transition applies or none of it does.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
