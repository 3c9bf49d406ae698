// Package group implements group lifecycle and membership. The standing
// invariant: a group with at least one member always has at least one
// admin; losing the last admin promotes an arbitrary remaining member,
// losing the last member deletes the group and its messages.
package group

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	myredis "github.com/Phadec/Harmony-Chat-sub000/internal/dao/redis"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
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
}

func NewService(repos *mysql.Repositories, g *guard.Guard, notifier chat.Notifier, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, guard: g, notifier: notifier, cache: cache}
}

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

func (s *Service) memberIds(ctx context.Context, groupUuid string) ([]string, error) {
	members, err := s.repos.GroupMember.FindByGroup(ctx, groupUuid)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserUuid)
	}
	return ids, nil
}

// CreateGroup creates a group with the caller as its first admin; the
// optional member list joins immediately.
func (s *Service) CreateGroup(ctx context.Context, req request.CreateGroupRequest) (string, error) {
	group := &model.Group{
		Uuid:   "G" + random.GetNowAndLenRandomString(11),
		Name:   req.Name,
		Avatar: req.Avatar,
	}
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.Group.Create(ctx, group); err != nil {
			return err
		}
		if err := tx.GroupMember.Create(ctx, &model.GroupMember{
			GroupUuid: group.Uuid,
			UserUuid:  req.UserId,
			IsAdmin:   true,
		}); err != nil {
			return err
		}
		for _, memberUuid := range req.MemberUuids {
			if memberUuid == req.UserId {
				continue
			}
			if err := tx.GroupMember.Create(ctx, &model.GroupMember{
				GroupUuid: group.Uuid,
				UserUuid:  memberUuid,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	for _, memberUuid := range req.MemberUuids {
		s.notifier.PushToUser(memberUuid, chat.Event{Name: chat.EventUpdateRelationships})
	}
	return group.Uuid, nil
}

// UpdateGroup edits name, avatar, or theme. Admin only.
func (s *Service) UpdateGroup(ctx context.Context, req request.UpdateGroupRequest) error {
	if _, err := s.guard.RequireAdmin(ctx, req.GroupUuid, req.UserId); err != nil {
		return err
	}
	group, err := s.repos.Group.FindByUuid(ctx, req.GroupUuid)
	if err != nil {
		return err
	}
	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Avatar != "" {
		group.Avatar = req.Avatar
	}
	if req.ChatTheme != "" {
		group.ChatTheme = req.ChatTheme
	}
	if err := s.repos.Group.Update(ctx, group); err != nil {
		return err
	}
	ids, err := s.memberIds(ctx, req.GroupUuid)
	if err != nil {
		return err
	}
	s.notifier.PushToUsers(ids, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(ids...)
	return nil
}

// DeleteGroup dissolves the group, its membership, messages, and read
// marks. Admin only.
func (s *Service) DeleteGroup(ctx context.Context, userId, groupUuid string) error {
	if _, err := s.guard.RequireAdmin(ctx, groupUuid, userId); err != nil {
		return err
	}
	ids, err := s.memberIds(ctx, groupUuid)
	if err != nil {
		return err
	}
	if err := s.dissolveGroup(ctx, groupUuid); err != nil {
		return err
	}
	s.notifier.PushToUsers(ids, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(ids...)
	return nil
}

func (s *Service) dissolveGroup(ctx context.Context, groupUuid string) error {
	return s.repos.Transaction(func(tx *mysql.Repositories) error {
		return dissolveGroupTx(ctx, tx, groupUuid)
	})
}

// dissolveGroupTx removes the group, its membership, messages, and read
// marks inside the caller's transaction.
func dissolveGroupTx(ctx context.Context, tx *mysql.Repositories, groupUuid string) error {
	messages, err := tx.Message.FindByGroup(ctx, groupUuid)
	if err != nil {
		return err
	}
	messageUuids := make([]int64, 0, len(messages))
	for _, m := range messages {
		messageUuids = append(messageUuids, m.Uuid)
	}
	if len(messageUuids) > 0 {
		if err := tx.ReadStatus.DeleteByMessageUuids(ctx, messageUuids); err != nil {
			return err
		}
	}
	if err := tx.Message.DeleteByGroup(ctx, groupUuid); err != nil {
		return err
	}
	if err := tx.GroupMember.DeleteByGroup(ctx, groupUuid); err != nil {
		return err
	}
	return tx.Group.Delete(ctx, groupUuid)
}

// AddMember adds a user to the group. Admin only.
func (s *Service) AddMember(ctx context.Context, req request.GroupMemberRequest) error {
	if _, err := s.guard.RequireAdmin(ctx, req.GroupUuid, req.UserId); err != nil {
		return err
	}
	if _, err := s.repos.User.FindByUuid(ctx, req.MemberUuid); err != nil {
		return err
	}
	if _, err := s.repos.GroupMember.Find(ctx, req.GroupUuid, req.MemberUuid); err == nil {
		return errorx.New(errorx.CodeConflict, "user is already a member")
	} else if !errorx.IsNotFound(err) {
		return err
	}
	if err := s.repos.GroupMember.Create(ctx, &model.GroupMember{
		GroupUuid: req.GroupUuid,
		UserUuid:  req.MemberUuid,
	}); err != nil {
		return err
	}
	s.notifier.PushToUser(req.MemberUuid, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(req.MemberUuid)
	return nil
}

// RemoveMember removes a member. Admins may remove anyone; a plain
// member only themselves. Afterwards the admin invariant is restored:
// no members left deletes the group, no admins left promotes an
// arbitrary remaining member.
func (s *Service) RemoveMember(ctx context.Context, req request.GroupMemberRequest) error {
	if err := s.guard.RequireMemberAction(ctx, req.GroupUuid, req.UserId, req.MemberUuid); err != nil {
		return err
	}
	if _, err := s.repos.GroupMember.Find(ctx, req.GroupUuid, req.MemberUuid); err != nil {
		return err
	}

	var groupDissolved bool
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.GroupMember.Delete(ctx, req.GroupUuid, req.MemberUuid); err != nil {
			return err
		}
		remaining, err := tx.GroupMember.CountByGroup(ctx, req.GroupUuid)
		if err != nil {
			return err
		}
		if remaining == 0 {
			groupDissolved = true
			return dissolveGroupTx(ctx, tx, req.GroupUuid)
		}
		admins, err := tx.GroupMember.CountAdmins(ctx, req.GroupUuid)
		if err != nil {
			return err
		}
		if admins == 0 {
			members, err := tx.GroupMember.FindByGroup(ctx, req.GroupUuid)
			if err != nil {
				return err
			}
			promoted := members[0]
			promoted.IsAdmin = true
			if err := tx.GroupMember.Update(ctx, &promoted); err != nil {
				return err
			}
			zap.L().Info("promoted member to admin after last admin left",
				zap.String("group", req.GroupUuid), zap.String("user", promoted.UserUuid))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if groupDissolved {
		s.invalidateRelationships(req.MemberUuid)
		return nil
	}

	ids, err := s.memberIds(ctx, req.GroupUuid)
	if err != nil {
		return err
	}
	s.notifier.PushToUser(req.MemberUuid, chat.Event{Name: chat.EventUpdateRelationships})
	s.notifier.PushToUsers(ids, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(append(ids, req.MemberUuid)...)
	return nil
}

// PromoteAdmin grants admin rights. Admin only.
func (s *Service) PromoteAdmin(ctx context.Context, req request.GroupMemberRequest) error {
	if _, err := s.guard.RequireAdmin(ctx, req.GroupUuid, req.UserId); err != nil {
		return err
	}
	member, err := s.repos.GroupMember.Find(ctx, req.GroupUuid, req.MemberUuid)
	if err != nil {
		return err
	}
	if member.IsAdmin {
		return errorx.New(errorx.CodeConflict, "user is already an admin")
	}
	member.IsAdmin = true
	if err := s.repos.GroupMember.Update(ctx, member); err != nil {
		return err
	}
	s.notifier.PushToUser(req.MemberUuid, chat.Event{Name: chat.EventUpdateRelationships})
	return nil
}

// RevokeAdmin removes admin rights. Revoking the last admin of a
// populated group is rejected; leaving the group is the way out.
func (s *Service) RevokeAdmin(ctx context.Context, req request.GroupMemberRequest) error {
	if _, err := s.guard.RequireAdmin(ctx, req.GroupUuid, req.UserId); err != nil {
		return err
	}
	member, err := s.repos.GroupMember.Find(ctx, req.GroupUuid, req.MemberUuid)
	if err != nil {
		return err
	}
	if !member.IsAdmin {
		return errorx.New(errorx.CodeConflict, "user is not an admin")
	}
	admins, err := s.repos.GroupMember.CountAdmins(ctx, req.GroupUuid)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return errorx.New(errorx.CodeConflict, "cannot revoke the last admin")
	}
	member.IsAdmin = false
	if err := s.repos.GroupMember.Update(ctx, member); err != nil {
		return err
	}
	s.notifier.PushToUser(req.MemberUuid, chat.Event{Name: chat.EventUpdateRelationships})
	return nil
}

// SetMuted toggles notification muting on the caller's own membership.
func (s *Service) SetMuted(ctx context.Context, userId, groupUuid string, muted bool) error {
	member, err := s.repos.GroupMember.Find(ctx, groupUuid, userId)
	if err != nil {
		return err
	}
	member.NotificationsMuted = muted
	if err := s.repos.GroupMember.Update(ctx, member); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	return nil
}

// NotifyMembers sends a free-text group notice. The push goes to every
// connected client, not just members; see DESIGN.md before narrowing it.
func (s *Service) NotifyMembers(ctx context.Context, req request.NotifyGroupMembersRequest) error {
	if _, err := s.guard.RequireMember(ctx, req.GroupUuid, req.UserId); err != nil {
		return err
	}
	s.notifier.Broadcast(chat.Event{Name: chat.EventNotifyGroupMembers, Payload: map[string]any{
		"group_uuid": req.GroupUuid,
		"message":    req.Message,
	}})
	return nil
}

// GetGroups lists the caller's groups.
func (s *Service) GetGroups(ctx context.Context, userId string) ([]respond.GroupRespond, error) {
	memberships, err := s.repos.GroupMember.FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	groupUuids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		groupUuids = append(groupUuids, m.GroupUuid)
	}
	groups, err := s.repos.Group.FindByUuids(ctx, groupUuids)
	if err != nil {
		return nil, err
	}
	groupsById := make(map[string]model.Group, len(groups))
	for _, g := range groups {
		groupsById[g.Uuid] = g
	}

	list := make([]respond.GroupRespond, 0, len(memberships))
	for _, m := range memberships {
		group, ok := groupsById[m.GroupUuid]
		if !ok {
			continue
		}
		count, err := s.repos.GroupMember.CountByGroup(ctx, m.GroupUuid)
		if err != nil {
			return nil, err
		}
		list = append(list, respond.GroupRespond{
			GroupUuid:          group.Uuid,
			Name:               group.Name,
			Avatar:             group.Avatar,
			ChatTheme:          group.ChatTheme,
			MemberCount:        count,
			IsAdmin:            m.IsAdmin,
			NotificationsMuted: m.NotificationsMuted,
		})
	}
	return list, nil
}

// GetMembers lists a group's members. Members only.
func (s *Service) GetMembers(ctx context.Context, userId, groupUuid string) ([]respond.GroupMemberRespond, error) {
	if _, err := s.guard.RequireMember(ctx, groupUuid, userId); err != nil {
		return nil, err
	}
	members, err := s.repos.GroupMember.FindByGroup(ctx, groupUuid)
	if err != nil {
		return nil, err
	}
	userUuids := make([]string, 0, len(members))
	for _, m := range members {
		userUuids = append(userUuids, m.UserUuid)
	}
	users, err := s.repos.User.FindByUuids(ctx, userUuids)
	if err != nil {
		return nil, err
	}
	usersById := make(map[string]model.User, len(users))
	for _, u := range users {
		usersById[u.Uuid] = u
	}

	list := make([]respond.GroupMemberRespond, 0, len(members))
	for _, m := range members {
		u, ok := usersById[m.UserUuid]
		if !ok {
			continue
		}
		list = append(list, respond.GroupMemberRespond{
			UserUuid:    m.UserUuid,
			DisplayName: u.FullName(),
			TagName:     u.TagName,
			Avatar:      u.Avatar,
			IsAdmin:     m.IsAdmin,
			Status:      u.VisibleStatus(),
		})
	}
	return list, nil
}
