// Package friend implements the friend-relationship state machine: per
// ordered pair (A,B) the states are NoRelation, Pending in either
// direction, Friends, and Blocked by either side. Compound transitions
// run inside one transaction and under a per-pair mutex so the reciprocal
// auto-accept cannot race its mirror-image call.
package friend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	myredis "github.com/Phadec/Harmony-Chat-sub000/internal/dao/redis"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/respond"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/guard"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/random"
)

type Service struct {
	repos    *mysql.Repositories
	guard    *guard.Guard
	notifier chat.Notifier
	cache    myredis.AsyncCacheService
	pairs    *pairLock
}

// NewService creates the friend service. cache may be nil; caching is
// then skipped entirely.
func NewService(repos *mysql.Repositories, g *guard.Guard, notifier chat.Notifier, cache myredis.AsyncCacheService) *Service {
	return &Service{
		repos:    repos,
		guard:    g,
		notifier: notifier,
		cache:    cache,
		pairs:    newPairLock(),
	}
}

// invalidateRelationships drops the cached inbox view for the affected
// users, off the request path.
func (s *Service) invalidateRelationships(userIds ...string) {
	if s.cache == nil {
		return
	}
	ids := append([]string(nil), userIds...)
	s.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		for _, id := range ids {
			if err := s.cache.Delete(ctx, "relationships_"+id); err != nil {
				zap.L().Warn("cache invalidation failed", zap.String("user", id), zap.Error(err))
			}
		}
	})
}

// AddFriend creates a pending request sender->receiver, or, when a
// reciprocal pending request receiver->sender already exists, resolves
// both directly into a friendship (the reciprocal short-circuit).
func (s *Service) AddFriend(ctx context.Context, senderId, receiverId string) error {
	if senderId == receiverId {
		return errorx.New(errorx.CodeConflict, "cannot add yourself as a friend")
	}
	if _, err := s.repos.User.FindByUuid(ctx, receiverId); err != nil {
		return err
	}

	unlock := s.pairs.Lock(senderId, receiverId)
	defer unlock()

	blocked, err := s.repos.UserBlock.ExistsBetween(ctx, senderId, receiverId)
	if err != nil {
		return err
	}
	if blocked {
		return errorx.New(errorx.CodeForbidden, "cannot send a friend request to this user")
	}

	if _, err := s.repos.Friendship.Find(ctx, senderId, receiverId); err == nil {
		return errorx.New(errorx.CodeConflict, "already friends")
	} else if !errorx.IsNotFound(err) {
		return err
	}

	if _, err := s.repos.FriendRequest.FindPending(ctx, senderId, receiverId); err == nil {
		return errorx.New(errorx.CodeConflict, "friend request already pending")
	} else if !errorx.IsNotFound(err) {
		return err
	}

	// Reciprocal short-circuit: both users requested each other, so the
	// second request completes the friendship instead of stacking a
	// second pending row.
	reciprocal, err := s.repos.FriendRequest.FindPending(ctx, receiverId, senderId)
	if err != nil && !errorx.IsNotFound(err) {
		return err
	}
	if reciprocal != nil {
		if err := s.becomeFriends(ctx, senderId, receiverId); err != nil {
			return err
		}
		s.notifier.PushToUser(senderId, chat.Event{Name: chat.EventFriendRequestAccepted, Payload: map[string]any{"friend_id": receiverId}})
		s.notifier.PushToUser(receiverId, chat.Event{Name: chat.EventFriendRequestAccepted, Payload: map[string]any{"friend_id": senderId}})
		s.invalidateRelationships(senderId, receiverId)
		return nil
	}

	request := &model.FriendRequest{
		Uuid:        "F" + random.GetNowAndLenRandomString(11),
		SenderId:    senderId,
		ReceiverId:  receiverId,
		Status:      model.RequestPending,
		RequestDate: time.Now(),
	}
	if err := s.repos.FriendRequest.Create(ctx, request); err != nil {
		return err
	}
	s.notifier.PushToUser(receiverId, chat.Event{Name: chat.EventFriendRequestReceived, Payload: map[string]any{"request_id": request.Uuid}})
	return nil
}

// becomeFriends creates both friendship rows and deletes every pending
// request between the pair, atomically.
func (s *Service) becomeFriends(ctx context.Context, userA, userB string) error {
	return s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.Friendship.Create(ctx, &model.Friendship{OwnerId: userA, FriendId: userB}); err != nil {
			return err
		}
		if err := tx.Friendship.Create(ctx, &model.Friendship{OwnerId: userB, FriendId: userA}); err != nil {
			return err
		}
		return tx.FriendRequest.DeleteBetween(ctx, userA, userB)
	})
}

// AcceptFriendRequest completes a pending request. Receiver only.
func (s *Service) AcceptFriendRequest(ctx context.Context, userId, requestId string) error {
	request, err := s.repos.FriendRequest.FindByUuid(ctx, requestId)
	if err != nil {
		return err
	}
	if request.ReceiverId != userId {
		return errorx.New(errorx.CodeForbidden, "only the receiver may accept a friend request")
	}

	unlock := s.pairs.Lock(request.SenderId, request.ReceiverId)
	defer unlock()

	// A concurrent cancel, reject, or block may have resolved the request
	// while we waited for the lock; only a still-pending row may complete.
	request, err = s.repos.FriendRequest.FindByUuid(ctx, requestId)
	if err != nil {
		return err
	}
	if request.Status != model.RequestPending {
		return errorx.New(errorx.CodeConflict, "friend request already resolved")
	}

	if err := s.becomeFriends(ctx, request.SenderId, request.ReceiverId); err != nil {
		return err
	}
	s.notifier.PushToUser(request.SenderId, chat.Event{Name: chat.EventFriendRequestAccepted, Payload: map[string]any{"friend_id": request.ReceiverId}})
	s.notifier.PushToUser(request.ReceiverId, chat.Event{Name: chat.EventFriendRequestAccepted, Payload: map[string]any{"friend_id": request.SenderId}})
	s.invalidateRelationships(request.SenderId, request.ReceiverId)
	return nil
}

// RejectFriendRequest deletes a pending request. Receiver only.
func (s *Service) RejectFriendRequest(ctx context.Context, userId, requestId string) error {
	return s.dropRequest(ctx, userId, requestId, false)
}

// CancelFriendRequest deletes a pending request. Sender only.
func (s *Service) CancelFriendRequest(ctx context.Context, userId, requestId string) error {
	return s.dropRequest(ctx, userId, requestId, true)
}

// dropRequest removes a pending row; reject and cancel differ only in
// which party is authorized and which event name goes out.
func (s *Service) dropRequest(ctx context.Context, userId, requestId string, bySender bool) error {
	request, err := s.repos.FriendRequest.FindByUuid(ctx, requestId)
	if err != nil {
		return err
	}
	eventName := chat.EventFriendRequestRejected
	if bySender {
		eventName = chat.EventFriendRequestCanceled
		if request.SenderId != userId {
			return errorx.New(errorx.CodeForbidden, "only the sender may cancel a friend request")
		}
	} else if request.ReceiverId != userId {
		return errorx.New(errorx.CodeForbidden, "only the receiver may reject a friend request")
	}

	unlock := s.pairs.Lock(request.SenderId, request.ReceiverId)
	defer unlock()

	// Re-check under the lock: a concurrent accept, block, or the mirror
	// drop may already have removed the row, and deleting zero rows would
	// otherwise push events for a request that no longer exists.
	if request, err = s.repos.FriendRequest.FindByUuid(ctx, requestId); err != nil {
		return err
	}
	if err := s.repos.FriendRequest.Delete(ctx, request.Uuid); err != nil {
		return err
	}
	event := chat.Event{Name: eventName, Payload: map[string]any{"request_id": request.Uuid}}
	s.notifier.PushToUser(request.SenderId, event)
	s.notifier.PushToUser(request.ReceiverId, event)
	return nil
}

// RemoveFriend deletes both friendship rows. Messages are kept; the
// thread just disappears from both inbox views.
func (s *Service) RemoveFriend(ctx context.Context, userId, friendId string) error {
	unlock := s.pairs.Lock(userId, friendId)
	defer unlock()

	if _, err := s.repos.Friendship.Find(ctx, userId, friendId); err != nil {
		return err
	}
	if err := s.repos.Friendship.DeletePair(ctx, userId, friendId); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventFriendRemoved, Payload: map[string]any{"friend_id": friendId}})
	s.notifier.PushToUser(friendId, chat.Event{Name: chat.EventFriendRemoved, Payload: map[string]any{"friend_id": userId}})
	s.invalidateRelationships(userId, friendId)
	return nil
}

// BlockUser severs every relation between the pair and records the block.
func (s *Service) BlockUser(ctx context.Context, userId, blockedId string) error {
	if userId == blockedId {
		return errorx.New(errorx.CodeConflict, "cannot block yourself")
	}
	if _, err := s.repos.User.FindByUuid(ctx, blockedId); err != nil {
		return err
	}

	unlock := s.pairs.Lock(userId, blockedId)
	defer unlock()

	exists, err := s.repos.UserBlock.Exists(ctx, userId, blockedId)
	if err != nil {
		return err
	}
	if exists {
		return errorx.New(errorx.CodeConflict, "user is already blocked")
	}

	err = s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.Friendship.DeletePair(ctx, userId, blockedId); err != nil {
			return err
		}
		if err := tx.FriendRequest.DeleteBetween(ctx, userId, blockedId); err != nil {
			return err
		}
		return tx.UserBlock.Create(ctx, &model.UserBlock{
			OwnerId:     userId,
			BlockedId:   blockedId,
			BlockedDate: time.Now(),
		})
	})
	if err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUserBlocked, Payload: map[string]any{"blocked_user_id": blockedId}})
	s.notifier.PushToUser(blockedId, chat.Event{Name: chat.EventUserBlockedByOther, Payload: map[string]any{"blocked_by_user_id": userId}})
	s.invalidateRelationships(userId, blockedId)
	return nil
}

// UnblockUser lifts a block. A second call finds no row and returns
// NotFound; it never removes anything twice. The prior friendship is not
// restored.
func (s *Service) UnblockUser(ctx context.Context, userId, blockedId string) error {
	unlock := s.pairs.Lock(userId, blockedId)
	defer unlock()

	if _, err := s.repos.UserBlock.Find(ctx, userId, blockedId); err != nil {
		return err
	}
	if err := s.repos.UserBlock.Delete(ctx, userId, blockedId); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUserUnblocked, Payload: map[string]any{"unblocked_user_id": blockedId}})
	return nil
}

// SetNickname overrides the display name the owner sees for one friend.
func (s *Service) SetNickname(ctx context.Context, userId, friendId, nickname string) error {
	friendship, err := s.repos.Friendship.Find(ctx, userId, friendId)
	if err != nil {
		return err
	}
	friendship.Nickname = nickname
	if err := s.repos.Friendship.Update(ctx, friendship); err != nil {
		return err
	}
	event := chat.Event{Name: chat.EventNicknameChanged, Payload: map[string]any{"friend_id": friendId, "nickname": nickname}}
	s.notifier.PushToUser(userId, event)
	s.notifier.PushToUser(friendId, event)
	s.invalidateRelationships(userId)
	return nil
}

// SetMuted toggles notification muting on the owner's edge.
func (s *Service) SetMuted(ctx context.Context, userId, friendId string, muted bool) error {
	friendship, err := s.repos.Friendship.Find(ctx, userId, friendId)
	if err != nil {
		return err
	}
	friendship.NotificationsMuted = muted
	if err := s.repos.Friendship.Update(ctx, friendship); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	return nil
}

// SetChatTheme sets the theme on the owner's edge.
func (s *Service) SetChatTheme(ctx context.Context, userId, friendId, theme string) error {
	friendship, err := s.repos.Friendship.Find(ctx, userId, friendId)
	if err != nil {
		return err
	}
	friendship.ChatTheme = theme
	if err := s.repos.Friendship.Update(ctx, friendship); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	return nil
}

// GetFriends lists the owner's friends with nickname overrides resolved.
func (s *Service) GetFriends(ctx context.Context, userId string) ([]respond.FriendRespond, error) {
	friendships, err := s.repos.Friendship.FindByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}
	friendIds := make([]string, 0, len(friendships))
	for _, f := range friendships {
		friendIds = append(friendIds, f.FriendId)
	}
	users, err := s.repos.User.FindByUuids(ctx, friendIds)
	if err != nil {
		return nil, err
	}
	usersById := make(map[string]model.User, len(users))
	for _, u := range users {
		usersById[u.Uuid] = u
	}

	list := make([]respond.FriendRespond, 0, len(friendships))
	for _, f := range friendships {
		u, ok := usersById[f.FriendId]
		if !ok {
			continue
		}
		displayName := f.Nickname
		if displayName == "" {
			displayName = u.FullName()
		}
		list = append(list, respond.FriendRespond{
			FriendId:           f.FriendId,
			DisplayName:        displayName,
			Nickname:           f.Nickname,
			TagName:            u.TagName,
			Avatar:             u.Avatar,
			Status:             u.VisibleStatus(),
			NotificationsMuted: f.NotificationsMuted,
			ChatTheme:          f.ChatTheme,
		})
	}
	return list, nil
}

// GetPendingRequests lists requests awaiting the user's answer. The
// display fields resolve the sender.
func (s *Service) GetPendingRequests(ctx context.Context, userId string) ([]respond.FriendRequestRespond, error) {
	requests, err := s.repos.FriendRequest.FindPendingByReceiver(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.toRequestResponds(ctx, requests, func(r model.FriendRequest) string { return r.SenderId })
}

// GetSentRequests lists the user's own outstanding requests. The display
// fields resolve the receiver.
func (s *Service) GetSentRequests(ctx context.Context, userId string) ([]respond.FriendRequestRespond, error) {
	requests, err := s.repos.FriendRequest.FindPendingBySender(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.toRequestResponds(ctx, requests, func(r model.FriendRequest) string { return r.ReceiverId })
}

// toRequestResponds resolves the counterpart of each request into the
// display fields; counterpart picks which side that is.
func (s *Service) toRequestResponds(ctx context.Context, requests []model.FriendRequest, counterpart func(model.FriendRequest) string) ([]respond.FriendRequestRespond, error) {
	userIds := make([]string, 0, len(requests))
	for _, r := range requests {
		userIds = append(userIds, counterpart(r))
	}
	users, err := s.repos.User.FindByUuids(ctx, userIds)
	if err != nil {
		return nil, err
	}
	usersById := make(map[string]model.User, len(users))
	for _, u := range users {
		usersById[u.Uuid] = u
	}

	list := make([]respond.FriendRequestRespond, 0, len(requests))
	for _, r := range requests {
		other := usersById[counterpart(r)]
		list = append(list, respond.FriendRequestRespond{
			RequestId:   r.Uuid,
			SenderId:    r.SenderId,
			ReceiverId:  r.ReceiverId,
			DisplayName: other.FullName(),
			TagName:     other.TagName,
			Avatar:      other.Avatar,
			SentAt:      r.RequestDate.Format(time.RFC3339),
		})
	}
	return list, nil
}

// GetBlockedUsers lists the owner's block list.
func (s *Service) GetBlockedUsers(ctx context.Context, userId string) ([]respond.BlockedUserRespond, error) {
	blocks, err := s.repos.UserBlock.FindByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}
	blockedIds := make([]string, 0, len(blocks))
	for _, b := range blocks {
		blockedIds = append(blockedIds, b.BlockedId)
	}
	users, err := s.repos.User.FindByUuids(ctx, blockedIds)
	if err != nil {
		return nil, err
	}
	usersById := make(map[string]model.User, len(users))
	for _, u := range users {
		usersById[u.Uuid] = u
	}

	list := make([]respond.BlockedUserRespond, 0, len(blocks))
	for _, b := range blocks {
		u := usersById[b.BlockedId]
		list = append(list, respond.BlockedUserRespond{
			BlockedId:   b.BlockedId,
			DisplayName: u.FullName(),
			TagName:     u.TagName,
			Avatar:      u.Avatar,
			BlockedDate: b.BlockedDate.Format(time.RFC3339),
		})
	}
	return list, nil
}
