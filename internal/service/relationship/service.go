package relationship

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	myredis "github.com/Phadec/Harmony-Chat-sub000/internal/dao/redis"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/respond"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/guard"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

const relationshipCacheTTL = 30 * time.Second

type Service struct {
	repos *mysql.Repositories
	guard *guard.Guard
	cache myredis.AsyncCacheService
}

func NewService(repos *mysql.Repositories, g *guard.Guard, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, guard: g, cache: cache}
}

// GetRelationships returns the user's ordered inbox. Results are cached
// briefly; mutations invalidate the key, so the TTL only bounds staleness
// across instances.
func (s *Service) GetRelationships(ctx context.Context, userId string) ([]respond.RelationshipRespond, error) {
	if _, err := s.repos.User.FindByUuid(ctx, userId); err != nil {
		return nil, err
	}

	cacheKey := "relationships_" + userId
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var list []respond.RelationshipRespond
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
		}
	}

	input, err := s.loadProjectionInput(ctx, userId)
	if err != nil {
		return nil, err
	}
	list := Project(*input)

	if s.cache != nil {
		if data, err := json.Marshal(list); err == nil {
			s.cache.SubmitTask(func() {
				cacheCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := s.cache.Set(cacheCtx, cacheKey, string(data), relationshipCacheTTL); err != nil {
					zap.L().Warn("cache relationships failed", zap.String("user", userId), zap.Error(err))
				}
			})
		}
	}
	return list, nil
}

// loadProjectionInput materializes everything Project needs: the store
// round-trips happen here, the merge happens in the pure function.
func (s *Service) loadProjectionInput(ctx context.Context, userId string) (*ProjectionInput, error) {
	tombstoneUuids, err := s.repos.DeletedMessage.FindMessageUuidsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	tombstoned := make(map[int64]bool, len(tombstoneUuids))
	for _, uuid := range tombstoneUuids {
		tombstoned[uuid] = true
	}

	privateMessages, err := s.repos.Message.FindPrivateInvolving(ctx, userId)
	if err != nil {
		return nil, err
	}
	privateMessages = dropTombstoned(privateMessages, tombstoned)

	friendships, err := s.repos.Friendship.FindByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}
	friendIds := make([]string, 0, len(friendships))
	for _, f := range friendships {
		friendIds = append(friendIds, f.FriendId)
	}
	friends, err := s.repos.User.FindByUuids(ctx, friendIds)
	if err != nil {
		return nil, err
	}
	usersById := make(map[string]model.User, len(friends))
	for _, u := range friends {
		usersById[u.Uuid] = u
	}

	memberships, err := s.repos.GroupMember.FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	groupUuids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		groupUuids = append(groupUuids, m.GroupUuid)
	}
	groupMessages, err := s.repos.Message.FindByGroups(ctx, groupUuids)
	if err != nil {
		return nil, err
	}
	groupMessages = dropTombstoned(groupMessages, tombstoned)

	groups, err := s.repos.Group.FindByUuids(ctx, groupUuids)
	if err != nil {
		return nil, err
	}
	groupsById := make(map[string]model.Group, len(groups))
	for _, g := range groups {
		groupsById[g.Uuid] = g
	}

	groupMessageUuids := make([]int64, 0, len(groupMessages))
	for _, m := range groupMessages {
		groupMessageUuids = append(groupMessageUuids, m.Uuid)
	}
	readUuids, err := s.repos.ReadStatus.FindReadMessageUuids(ctx, userId, groupMessageUuids)
	if err != nil {
		return nil, err
	}
	readMarks := make(map[int64]bool, len(readUuids))
	for _, uuid := range readUuids {
		readMarks[uuid] = true
	}

	return &ProjectionInput{
		UserId:          userId,
		PrivateMessages: privateMessages,
		Friendships:     friendships,
		GroupMessages:   groupMessages,
		Memberships:     memberships,
		UsersById:       usersById,
		GroupsById:      groupsById,
		GroupReadMarks:  readMarks,
	}, nil
}

func dropTombstoned(messages []model.Message, tombstoned map[int64]bool) []model.Message {
	if len(tombstoned) == 0 {
		return messages
	}
	kept := messages[:0]
	for _, m := range messages {
		if !tombstoned[m.Uuid] {
			kept = append(kept, m)
		}
	}
	return kept
}

// GetRecipientInfo describes the other side of a thread: the caller
// themselves, a private contact, or a group the caller belongs to.
func (s *Service) GetRecipientInfo(ctx context.Context, userId, recipientId string) (*respond.RecipientInfoRespond, error) {
	if recipientId == userId {
		user, err := s.repos.User.FindByUuid(ctx, userId)
		if err != nil {
			return nil, err
		}
		return &respond.RecipientInfoRespond{
			Type:        respond.RecipientSelf,
			Id:          user.Uuid,
			DisplayName: user.FullName(),
			TagName:     user.TagName,
			Avatar:      user.Avatar,
			Status:      user.Status,
		}, nil
	}

	if len(recipientId) > 0 && recipientId[0] == 'G' {
		if _, err := s.guard.RequireMember(ctx, recipientId, userId); err != nil {
			return nil, err
		}
		group, err := s.repos.Group.FindByUuid(ctx, recipientId)
		if err != nil {
			return nil, err
		}
		memberCount, err := s.repos.GroupMember.CountByGroup(ctx, recipientId)
		if err != nil {
			return nil, err
		}
		return &respond.RecipientInfoRespond{
			Type:        respond.RecipientGroup,
			Id:          group.Uuid,
			DisplayName: group.Name,
			Avatar:      group.Avatar,
			ChatTheme:   group.ChatTheme,
			MemberCount: memberCount,
		}, nil
	}

	user, err := s.repos.User.FindByUuid(ctx, recipientId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "recipient %s not found", recipientId)
		}
		return nil, err
	}
	info := &respond.RecipientInfoRespond{
		Type:        respond.RecipientPrivate,
		Id:          user.Uuid,
		DisplayName: user.FullName(),
		TagName:     user.TagName,
		Avatar:      user.Avatar,
		Status:      user.VisibleStatus(),
	}
	// The nickname override and theme live on the caller's edge, if any.
	friendship, err := s.repos.Friendship.Find(ctx, userId, recipientId)
	if err == nil {
		info.Nickname = friendship.Nickname
		info.ChatTheme = friendship.ChatTheme
		if friendship.Nickname != "" {
			info.DisplayName = friendship.Nickname
		}
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}
	return info, nil
}
