package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type readStatusRepository struct {
	db *gorm.DB
}

func NewReadStatusRepository(db *gorm.DB) ReadStatusRepository {
	return &readStatusRepository{db: db}
}

func (r *readStatusRepository) Create(ctx context.Context, status *model.MessageReadStatus) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return wrapDBError(err, "create read status")
	}
	return nil
}

func (r *readStatusRepository) Exists(ctx context.Context, messageUuid int64, userUuid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.MessageReadStatus{}).
		Where("message_uuid = ? AND user_uuid = ?", messageUuid, userUuid).
		Count(&count).Error; err != nil {
		return false, wrapDBError(err, "count read status")
	}
	return count > 0, nil
}

func (r *readStatusRepository) FindReadMessageUuids(ctx context.Context, userUuid string, messageUuids []int64) ([]int64, error) {
	if len(messageUuids) == 0 {
		return nil, nil
	}
	var read []int64
	if err := r.db.WithContext(ctx).Model(&model.MessageReadStatus{}).
		Where("user_uuid = ? AND message_uuid IN ?", userUuid, messageUuids).
		Pluck("message_uuid", &read).Error; err != nil {
		return nil, wrapDBErrorf(err, "find read marks user=%s", userUuid)
	}
	return read, nil
}

func (r *readStatusRepository) DeleteByMessageUuids(ctx context.Context, messageUuids []int64) error {
	if len(messageUuids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("message_uuid IN ?", messageUuids).Delete(&model.MessageReadStatus{}).Error; err != nil {
		return wrapDBError(err, "delete read marks")
	}
	return nil
}
