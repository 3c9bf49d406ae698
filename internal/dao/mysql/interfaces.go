// Package mysql provides the data access layer: one repository per entity,
// aggregated in Repositories, with closure-based transactions.
package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError maps gorm.ErrRecordNotFound to CodeNotFound and everything
// else to CodeDBError.
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf is wrapDBError with a formatted message.
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// UserRepository accesses user accounts.
type UserRepository interface {
	FindByUuid(ctx context.Context, uuid string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByTagName matches case-insensitively.
	FindByTagName(ctx context.Context, tagName string) (*model.User, error)
	FindByUuids(ctx context.Context, uuids []string) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdateStatus(ctx context.Context, uuid string, status int8) error
}

// PendingUserRepository accesses unconfirmed registrations.
type PendingUserRepository interface {
	Create(ctx context.Context, pending *model.PendingUser) error
	FindByCode(ctx context.Context, code string) (*model.PendingUser, error)
	FindByUsername(ctx context.Context, username string) (*model.PendingUser, error)
	Delete(ctx context.Context, id uint) error
	// DeleteExpired removes rows created before the cutoff; returns how many.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// FriendshipRepository accesses the directed friendship edges.
type FriendshipRepository interface {
	Find(ctx context.Context, ownerId, friendId string) (*model.Friendship, error)
	FindByOwner(ctx context.Context, ownerId string) ([]model.Friendship, error)
	Create(ctx context.Context, friendship *model.Friendship) error
	Update(ctx context.Context, friendship *model.Friendship) error
	// DeletePair removes both directions of the pair in one statement.
	DeletePair(ctx context.Context, userA, userB string) error
}

// FriendRequestRepository accesses pending friend requests.
type FriendRequestRepository interface {
	FindByUuid(ctx context.Context, uuid string) (*model.FriendRequest, error)
	FindPending(ctx context.Context, senderId, receiverId string) (*model.FriendRequest, error)
	FindPendingByReceiver(ctx context.Context, receiverId string) ([]model.FriendRequest, error)
	FindPendingBySender(ctx context.Context, senderId string) ([]model.FriendRequest, error)
	Create(ctx context.Context, request *model.FriendRequest) error
	Delete(ctx context.Context, uuid string) error
	// DeleteBetween removes pending requests in either direction.
	DeleteBetween(ctx context.Context, userA, userB string) error
}

// UserBlockRepository accesses block rows.
type UserBlockRepository interface {
	Find(ctx context.Context, ownerId, blockedId string) (*model.UserBlock, error)
	FindByOwner(ctx context.Context, ownerId string) ([]model.UserBlock, error)
	Exists(ctx context.Context, ownerId, blockedId string) (bool, error)
	// ExistsBetween reports a block in either direction.
	ExistsBetween(ctx context.Context, userA, userB string) (bool, error)
	Create(ctx context.Context, block *model.UserBlock) error
	Delete(ctx context.Context, ownerId, blockedId string) error
}

// GroupRepository accesses groups.
type GroupRepository interface {
	FindByUuid(ctx context.Context, uuid string) (*model.Group, error)
	FindByUuids(ctx context.Context, uuids []string) ([]model.Group, error)
	Create(ctx context.Context, group *model.Group) error
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, uuid string) error
}

// GroupMemberRepository accesses group membership.
type GroupMemberRepository interface {
	Find(ctx context.Context, groupUuid, userUuid string) (*model.GroupMember, error)
	FindByGroup(ctx context.Context, groupUuid string) ([]model.GroupMember, error)
	FindByUser(ctx context.Context, userUuid string) ([]model.GroupMember, error)
	FindGroupUuidsByUser(ctx context.Context, userUuid string) ([]string, error)
	Create(ctx context.Context, member *model.GroupMember) error
	Update(ctx context.Context, member *model.GroupMember) error
	Delete(ctx context.Context, groupUuid, userUuid string) error
	DeleteByGroup(ctx context.Context, groupUuid string) error
	CountByGroup(ctx context.Context, groupUuid string) (int64, error)
	CountAdmins(ctx context.Context, groupUuid string) (int64, error)
}

// MessageRepository accesses messages.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByUuid(ctx context.Context, uuid int64) (*model.Message, error)
	// FindPrivateBetween returns the private thread between two users,
	// oldest first.
	FindPrivateBetween(ctx context.Context, userA, userB string) ([]model.Message, error)
	// FindPrivateInvolving returns every private message sent or received
	// by the user.
	FindPrivateInvolving(ctx context.Context, userId string) ([]model.Message, error)
	FindByGroup(ctx context.Context, groupUuid string) ([]model.Message, error)
	FindByGroups(ctx context.Context, groupUuids []string) ([]model.Message, error)
	MarkRead(ctx context.Context, uuid int64, at time.Time) error
	DeleteByGroup(ctx context.Context, groupUuid string) error
}

// ReadStatusRepository accesses per-reader group read marks.
type ReadStatusRepository interface {
	Create(ctx context.Context, status *model.MessageReadStatus) error
	Exists(ctx context.Context, messageUuid int64, userUuid string) (bool, error)
	// FindReadMessageUuids filters the given message uuids down to those the
	// user has a read mark for.
	FindReadMessageUuids(ctx context.Context, userUuid string, messageUuids []int64) ([]int64, error)
	DeleteByMessageUuids(ctx context.Context, messageUuids []int64) error
}

// DeletedMessageRepository accesses per-user message tombstones.
type DeletedMessageRepository interface {
	// CreateBulk tombstones all the given messages for the user; rows that
	// already exist are skipped.
	CreateBulk(ctx context.Context, userUuid string, messageUuids []int64, at time.Time) error
	FindMessageUuidsByUser(ctx context.Context, userUuid string) ([]int64, error)
}
