package mysql

import (
	"context"
	"time"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

func (r *messageRepository) FindByUuid(ctx context.Context, uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "find message uuid=%d", uuid)
	}
	return &message, nil
}

func (r *messageRepository) FindPrivateBetween(ctx context.Context, userA, userB string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receive_id = ?) OR (sender_id = ? AND receive_id = ?)", userA, userB, userB, userA).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find private thread %s/%s", userA, userB)
	}
	return messages, nil
}

func (r *messageRepository) FindPrivateInvolving(ctx context.Context, userId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receive_id = ?", userId, userId).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find private messages of user=%s", userId)
	}
	return messages, nil
}

func (r *messageRepository) FindByGroup(ctx context.Context, groupUuid string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("receive_id = ?", groupUuid).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find group messages group=%s", groupUuid)
	}
	return messages, nil
}

func (r *messageRepository) FindByGroups(ctx context.Context, groupUuids []string) ([]model.Message, error) {
	if len(groupUuids) == 0 {
		return nil, nil
	}
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("receive_id IN ?", groupUuids).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBError(err, "find messages of groups")
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, uuid int64, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error; err != nil {
		return wrapDBErrorf(err, "mark message read uuid=%d", uuid)
	}
	return nil
}

func (r *messageRepository) DeleteByGroup(ctx context.Context, groupUuid string) error {
	if err := r.db.WithContext(ctx).Where("receive_id = ?", groupUuid).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "delete messages group=%s", groupUuid)
	}
	return nil
}
