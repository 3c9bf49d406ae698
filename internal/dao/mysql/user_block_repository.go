package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type userBlockRepository struct {
	db *gorm.DB
}

func NewUserBlockRepository(db *gorm.DB) UserBlockRepository {
	return &userBlockRepository{db: db}
}

func (r *userBlockRepository) Find(ctx context.Context, ownerId, blockedId string) (*model.UserBlock, error) {
	var block model.UserBlock
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND blocked_id = ?", ownerId, blockedId).First(&block).Error; err != nil {
		return nil, wrapDBErrorf(err, "find block owner=%s blocked=%s", ownerId, blockedId)
	}
	return &block, nil
}

func (r *userBlockRepository) FindByOwner(ctx context.Context, ownerId string) ([]model.UserBlock, error) {
	var blocks []model.UserBlock
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Order("blocked_date DESC").Find(&blocks).Error; err != nil {
		return nil, wrapDBErrorf(err, "find blocks owner=%s", ownerId)
	}
	return blocks, nil
}

func (r *userBlockRepository) Exists(ctx context.Context, ownerId, blockedId string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserBlock{}).
		Where("owner_id = ? AND blocked_id = ?", ownerId, blockedId).
		Count(&count).Error; err != nil {
		return false, wrapDBError(err, "count blocks")
	}
	return count > 0, nil
}

func (r *userBlockRepository) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserBlock{}).
		Where("(owner_id = ? AND blocked_id = ?) OR (owner_id = ? AND blocked_id = ?)", userA, userB, userB, userA).
		Count(&count).Error; err != nil {
		return false, wrapDBError(err, "count blocks between pair")
	}
	return count > 0, nil
}

func (r *userBlockRepository) Create(ctx context.Context, block *model.UserBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return wrapDBError(err, "create block")
	}
	return nil
}

// Delete removes the row for good so a later re-block does not collide
// with the (owner, blocked) unique slot.
func (r *userBlockRepository) Delete(ctx context.Context, ownerId, blockedId string) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("owner_id = ? AND blocked_id = ?", ownerId, blockedId).Delete(&model.UserBlock{}).Error; err != nil {
		return wrapDBErrorf(err, "delete block owner=%s blocked=%s", ownerId, blockedId)
	}
	return nil
}
