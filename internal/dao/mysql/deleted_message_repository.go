package mysql

import (
	"context"
	"time"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deletedMessageRepository struct {
	db *gorm.DB
}

func NewDeletedMessageRepository(db *gorm.DB) DeletedMessageRepository {
	return &deletedMessageRepository{db: db}
}

// CreateBulk inserts one tombstone per message. OnConflict DoNothing makes a
// repeated thread deletion a no-op instead of a unique-index failure.
func (r *deletedMessageRepository) CreateBulk(ctx context.Context, userUuid string, messageUuids []int64, at time.Time) error {
	if len(messageUuids) == 0 {
		return nil
	}
	tombstones := make([]model.UserDeletedMessage, 0, len(messageUuids))
	for _, uuid := range messageUuids {
		tombstones = append(tombstones, model.UserDeletedMessage{
			UserUuid:    userUuid,
			MessageUuid: uuid,
			DeletedDate: at,
		})
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tombstones).Error; err != nil {
		return wrapDBErrorf(err, "create tombstones user=%s", userUuid)
	}
	return nil
}

func (r *deletedMessageRepository) FindMessageUuidsByUser(ctx context.Context, userUuid string) ([]int64, error) {
	var messageUuids []int64
	if err := r.db.WithContext(ctx).Model(&model.UserDeletedMessage{}).
		Where("user_uuid = ?", userUuid).
		Pluck("message_uuid", &messageUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "find tombstones user=%s", userUuid)
	}
	return messageUuids, nil
}
