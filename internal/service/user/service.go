// Package user implements profile reads and edits.
package user

import (
	"context"
	"strings"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/respond"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

type Service struct {
	repos    *mysql.Repositories
	notifier chat.Notifier
}

func NewService(repos *mysql.Repositories, notifier chat.Notifier) *Service {
	return &Service{repos: repos, notifier: notifier}
}

// GetUserInfo returns the public profile, presence hidden if requested.
func (s *Service) GetUserInfo(ctx context.Context, uuid string) (*respond.UserInfoRespond, error) {
	user, err := s.repos.User.FindByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// SearchByTagName finds a user by their @handle, case-insensitively.
func (s *Service) SearchByTagName(ctx context.Context, tagName string) (*respond.UserInfoRespond, error) {
	if !strings.HasPrefix(tagName, "@") {
		tagName = "@" + tagName
	}
	user, err := s.repos.User.FindByTagName(ctx, tagName)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateUserInfo edits the caller's profile. A tag-name change is
// announced to the user's friends so their lists refresh.
func (s *Service) UpdateUserInfo(ctx context.Context, req request.UpdateUserInfoRequest) error {
	user, err := s.repos.User.FindByUuid(ctx, req.UserId)
	if err != nil {
		return err
	}
	if req.TagName != "" && !strings.EqualFold(req.TagName, user.TagName) {
		tagName := req.TagName
		if !strings.HasPrefix(tagName, "@") {
			tagName = "@" + tagName
		}
		if other, err := s.repos.User.FindByTagName(ctx, tagName); err == nil && other.Uuid != user.Uuid {
			return errorx.New(errorx.CodeConflict, "tag name already taken")
		} else if err != nil && !errorx.IsNotFound(err) {
			return err
		}
		user.TagName = tagName
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.ShowStatus != nil {
		user.ShowStatus = *req.ShowStatus
	}
	if err := s.repos.User.Update(ctx, user); err != nil {
		return err
	}

	friendships, err := s.repos.Friendship.FindByOwner(ctx, user.Uuid)
	if err != nil {
		return err
	}
	for _, f := range friendships {
		s.notifier.PushToUser(f.FriendId, chat.Event{Name: chat.EventUpdateRelationships})
	}
	return nil
}

// SetPresence flips the stored presence; called on socket connect and
// disconnect.
func (s *Service) SetPresence(ctx context.Context, uuid string, online bool) error {
	status := model.StatusOffline
	if online {
		status = model.StatusOnline
	}
	return s.repos.User.UpdateStatus(ctx, uuid, status)
}

func toUserInfo(user *model.User) *respond.UserInfoRespond {
	return &respond.UserInfoRespond{
		Uuid:      user.Uuid,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		TagName:   user.TagName,
		Avatar:    user.Avatar,
		Status:    user.VisibleStatus(),
	}
}
