package mysql

import (
	"context"
	"time"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type pendingUserRepository struct {
	db *gorm.DB
}

func NewPendingUserRepository(db *gorm.DB) PendingUserRepository {
	return &pendingUserRepository{db: db}
}

func (r *pendingUserRepository) Create(ctx context.Context, pending *model.PendingUser) error {
	if err := r.db.WithContext(ctx).Create(pending).Error; err != nil {
		return wrapDBError(err, "create pending user")
	}
	return nil
}

func (r *pendingUserRepository) FindByCode(ctx context.Context, code string) (*model.PendingUser, error) {
	var pending model.PendingUser
	if err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&pending).Error; err != nil {
		return nil, wrapDBError(err, "find pending user by code")
	}
	return &pending, nil
}

func (r *pendingUserRepository) FindByUsername(ctx context.Context, username string) (*model.PendingUser, error) {
	var pending model.PendingUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&pending).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending user username=%s", username)
	}
	return &pending, nil
}

func (r *pendingUserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&model.PendingUser{}, id).Error; err != nil {
		return wrapDBError(err, "delete pending user")
	}
	return nil
}

func (r *pendingUserRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().Where("created_at < ?", before).Delete(&model.PendingUser{})
	if res.Error != nil {
		return 0, wrapDBError(res.Error, "delete expired pending users")
	}
	return res.RowsAffected, nil
}
