// Package guard centralises the authorization decisions consulted before
// every state-mutating operation: actor identity, friendship, block
// state, and group membership/admin checks.
package guard

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

// Guard answers allow/deny for the representative rule set. Every denial
// is an errorx code the handler maps onto the response envelope; a nil
// return means allowed.
type Guard struct {
	friendshipRepo  mysql.FriendshipRepository
	blockRepo       mysql.UserBlockRepository
	groupMemberRepo mysql.GroupMemberRepository
}

func NewGuard(
	friendshipRepo mysql.FriendshipRepository,
	blockRepo mysql.UserBlockRepository,
	groupMemberRepo mysql.GroupMemberRepository,
) *Guard {
	return &Guard{
		friendshipRepo:  friendshipRepo,
		blockRepo:       blockRepo,
		groupMemberRepo: groupMemberRepo,
	}
}

// RequireSelf allows a user to act only on their own resources.
func (g *Guard) RequireSelf(actorId, resourceOwnerId string) error {
	if actorId != resourceOwnerId {
		return errorx.New(errorx.CodeForbidden, "cannot act on another user's resources")
	}
	return nil
}

// RequireSendPrivate denies sending when the recipient has blocked the
// sender. The check is one-directional: the sender having blocked the
// recipient does not by itself stop the send.
func (g *Guard) RequireSendPrivate(ctx context.Context, senderId, recipientId string) error {
	blocked, err := g.blockRepo.Exists(ctx, recipientId, senderId)
	if err != nil {
		return err
	}
	if blocked {
		return errorx.New(errorx.CodeForbidden, "recipient is not accepting your messages")
	}
	return nil
}

// RequireFriend checks that a directed friendship owner->friend exists.
func (g *Guard) RequireFriend(ctx context.Context, ownerId, friendId string) error {
	if _, err := g.friendshipRepo.Find(ctx, ownerId, friendId); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeForbidden, "not friends with this user")
		}
		return err
	}
	return nil
}

// RequireMember checks current group membership and returns the row so
// callers avoid a second lookup.
func (g *Guard) RequireMember(ctx context.Context, groupUuid, userId string) (*model.GroupMember, error) {
	member, err := g.groupMemberRepo.Find(ctx, groupUuid, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeForbidden, "not a member of this group")
		}
		return nil, err
	}
	return member, nil
}

// RequireAdmin checks membership with the admin flag set.
func (g *Guard) RequireAdmin(ctx context.Context, groupUuid, userId string) (*model.GroupMember, error) {
	member, err := g.RequireMember(ctx, groupUuid, userId)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin {
		return nil, errorx.New(errorx.CodeForbidden, "admin rights required")
	}
	return member, nil
}

// RequireMemberAction allows a member action on a target: admins may act
// on anyone, a plain member only on themselves (leaving the group).
func (g *Guard) RequireMemberAction(ctx context.Context, groupUuid, actorId, targetId string) error {
	member, err := g.RequireMember(ctx, groupUuid, actorId)
	if err != nil {
		return err
	}
	if actorId == targetId {
		return nil
	}
	if !member.IsAdmin {
		return errorx.New(errorx.CodeForbidden, "admin rights required to act on other members")
	}
	return nil
}

// RequireCanMarkPrivateRead allows only the message's recipient to mark
// it read; a sender never marks their own message.
func (g *Guard) RequireCanMarkPrivateRead(msg *model.Message, readerId string) error {
	if msg.SenderId == readerId {
		return errorx.New(errorx.CodeForbidden, "cannot mark your own message as read")
	}
	if msg.ReceiveId != readerId {
		return errorx.New(errorx.CodeForbidden, "only the recipient may mark this message read")
	}
	return nil
}

// RequireCanMarkGroupRead requires membership and that the reader is not
// the sender; the sender is marked read implicitly at send time.
func (g *Guard) RequireCanMarkGroupRead(ctx context.Context, msg *model.Message, readerId string) error {
	if msg.SenderId == readerId {
		return errorx.New(errorx.CodeForbidden, "cannot mark your own message as read")
	}
	if _, err := g.RequireMember(ctx, msg.ReceiveId, readerId); err != nil {
		return err
	}
	return nil
}
