// Package message implements sending, thread history, read marking, and
// per-user thread deletion (tombstoning).
package message

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
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/snowflake"
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

// SendMessage persists a private or group message and pushes it to the
// audience. Either content or an attachment must be present.
func (s *Service) SendMessage(ctx context.Context, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if req.Content == "" && req.AttachmentUrl == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "message needs content or an attachment")
	}
	sender, err := s.repos.User.FindByUuid(ctx, req.SenderId)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		Uuid:          snowflake.GenerateID(),
		SenderId:      req.SenderId,
		ReceiveId:     req.ReceiveId,
		Content:       req.Content,
		AttachmentUrl: req.AttachmentUrl,
		FileType:      req.FileType,
		FileName:      req.FileName,
		SentAt:        time.Now(),
	}

	if msg.IsGroupMessage() {
		return s.sendGroupMessage(ctx, sender, msg)
	}
	return s.sendPrivateMessage(ctx, sender, msg)
}

func (s *Service) sendPrivateMessage(ctx context.Context, sender *model.User, msg *model.Message) (*respond.MessageRespond, error) {
	if _, err := s.repos.User.FindByUuid(ctx, msg.ReceiveId); err != nil {
		return nil, err
	}
	if err := s.guard.RequireSendPrivate(ctx, msg.SenderId, msg.ReceiveId); err != nil {
		return nil, err
	}
	if err := s.repos.Message.Create(ctx, msg); err != nil {
		return nil, err
	}

	resp := toMessageRespond(msg, sender.FullName())
	s.notifier.PushToUser(msg.ReceiveId, chat.Event{Name: chat.EventReceivePrivateMessage, Payload: resp})
	s.invalidateRelationships(msg.SenderId, msg.ReceiveId)
	return resp, nil
}

func (s *Service) sendGroupMessage(ctx context.Context, sender *model.User, msg *model.Message) (*respond.MessageRespond, error) {
	if _, err := s.guard.RequireMember(ctx, msg.ReceiveId, msg.SenderId); err != nil {
		return nil, err
	}

	// The sender's read mark is written with the message: a sender never
	// sees their own message as unread.
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.Message.Create(ctx, msg); err != nil {
			return err
		}
		return tx.ReadStatus.Create(ctx, &model.MessageReadStatus{
			MessageUuid: msg.Uuid,
			UserUuid:    msg.SenderId,
			ReadAt:      msg.SentAt,
		})
	})
	if err != nil {
		return nil, err
	}

	members, err := s.repos.GroupMember.FindByGroup(ctx, msg.ReceiveId)
	if err != nil {
		return nil, err
	}
	memberIds := make([]string, 0, len(members))
	for _, m := range members {
		memberIds = append(memberIds, m.UserUuid)
	}

	resp := toMessageRespond(msg, sender.FullName())
	s.notifier.PushToUsers(memberIds, chat.Event{Name: chat.EventReceiveGroupMessage, Payload: resp})
	s.invalidateRelationships(memberIds...)
	return resp, nil
}

// GetChats returns one thread's history for the caller, oldest first,
// with the caller's tombstoned messages excluded.
func (s *Service) GetChats(ctx context.Context, userId, receiveId string) ([]respond.MessageRespond, error) {
	var messages []model.Message
	var err error

	if len(receiveId) > 0 && receiveId[0] == 'G' {
		if _, err := s.guard.RequireMember(ctx, receiveId, userId); err != nil {
			return nil, err
		}
		messages, err = s.repos.Message.FindByGroup(ctx, receiveId)
	} else {
		messages, err = s.repos.Message.FindPrivateBetween(ctx, userId, receiveId)
	}
	if err != nil {
		return nil, err
	}

	tombstoneUuids, err := s.repos.DeletedMessage.FindMessageUuidsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	tombstoned := make(map[int64]bool, len(tombstoneUuids))
	for _, uuid := range tombstoneUuids {
		tombstoned[uuid] = true
	}

	senderIds := make([]string, 0, len(messages))
	seen := make(map[string]bool)
	for _, m := range messages {
		if !seen[m.SenderId] {
			seen[m.SenderId] = true
			senderIds = append(senderIds, m.SenderId)
		}
	}
	senders, err := s.repos.User.FindByUuids(ctx, senderIds)
	if err != nil {
		return nil, err
	}
	namesById := make(map[string]string, len(senders))
	for _, u := range senders {
		namesById[u.Uuid] = u.FullName()
	}

	list := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		if tombstoned[messages[i].Uuid] {
			continue
		}
		list = append(list, *toMessageRespond(&messages[i], namesById[messages[i].SenderId]))
	}
	return list, nil
}

// MarkPrivateThreadRead marks every unread message the caller received
// in one private thread. The original sender gets a MessageRead push per
// message; the reader gets an UpdateRelationships signal once their own
// read-mark commits.
func (s *Service) MarkPrivateThreadRead(ctx context.Context, userId, otherId string) error {
	messages, err := s.repos.Message.FindPrivateBetween(ctx, userId, otherId)
	if err != nil {
		return err
	}
	now := time.Now()
	marked := make([]int64, 0)
	for i := range messages {
		msg := &messages[i]
		if msg.IsRead || msg.ReceiveId != userId {
			continue
		}
		if err := s.guard.RequireCanMarkPrivateRead(msg, userId); err != nil {
			return err
		}
		if err := s.repos.Message.MarkRead(ctx, msg.Uuid, now); err != nil {
			return err
		}
		marked = append(marked, msg.Uuid)
	}
	if len(marked) == 0 {
		return nil
	}
	for _, uuid := range marked {
		s.notifier.PushToUser(otherId, chat.Event{Name: chat.EventMessageRead, Payload: map[string]any{"chat_id": uuid}})
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(userId, otherId)
	return nil
}

// MarkGroupMessageRead records the caller's read mark for one group
// message. A second call finds the mark and is a no-op.
func (s *Service) MarkGroupMessageRead(ctx context.Context, userId string, messageUuid int64) error {
	msg, err := s.repos.Message.FindByUuid(ctx, messageUuid)
	if err != nil {
		return err
	}
	if !msg.IsGroupMessage() {
		return errorx.New(errorx.CodeInvalidParam, "not a group message")
	}
	if err := s.guard.RequireCanMarkGroupRead(ctx, msg, userId); err != nil {
		return err
	}
	exists, err := s.repos.ReadStatus.Exists(ctx, messageUuid, userId)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := s.repos.ReadStatus.Create(ctx, &model.MessageReadStatus{
		MessageUuid: messageUuid,
		UserUuid:    userId,
		ReadAt:      time.Now(),
	}); err != nil {
		return err
	}
	s.notifier.PushToUser(msg.SenderId, chat.Event{Name: chat.EventMessageRead, Payload: map[string]any{"chat_id": messageUuid}})
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(userId)
	return nil
}

// DeleteThread tombstones every message of one thread for the caller
// only; the counterpart's view is untouched and the rows remain.
func (s *Service) DeleteThread(ctx context.Context, userId, receiveId string) error {
	var messages []model.Message
	var err error
	if len(receiveId) > 0 && receiveId[0] == 'G' {
		if _, err := s.guard.RequireMember(ctx, receiveId, userId); err != nil {
			return err
		}
		messages, err = s.repos.Message.FindByGroup(ctx, receiveId)
	} else {
		messages, err = s.repos.Message.FindPrivateBetween(ctx, userId, receiveId)
	}
	if err != nil {
		return err
	}

	uuids := make([]int64, 0, len(messages))
	for _, m := range messages {
		uuids = append(uuids, m.Uuid)
	}
	if err := s.repos.DeletedMessage.CreateBulk(ctx, userId, uuids, time.Now()); err != nil {
		return err
	}
	s.notifier.PushToUser(userId, chat.Event{Name: chat.EventUpdateRelationships})
	s.invalidateRelationships(userId)
	return nil
}

func toMessageRespond(msg *model.Message, senderFullName string) *respond.MessageRespond {
	return &respond.MessageRespond{
		Uuid:           msg.Uuid,
		SenderId:       msg.SenderId,
		SenderFullName: senderFullName,
		ReceiveId:      msg.ReceiveId,
		Content:        msg.Content,
		AttachmentUrl:  msg.AttachmentUrl,
		FileType:       msg.FileType,
		FileName:       msg.FileName,
		SentAt:         msg.SentAt.Format(time.RFC3339),
		IsRead:         msg.IsRead,
	}
}
