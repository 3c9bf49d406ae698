package mysql

import (
	"context"
	"strings"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUuid(ctx context.Context, uuid string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user uuid=%s", uuid)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user username=%s", username)
	}
	return &user, nil
}

func (r *userRepository) FindByTagName(ctx context.Context, tagName string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("tag_name_lower = ?", strings.ToLower(tagName)).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user tag=%s", tagName)
	}
	return &user, nil
}

func (r *userRepository) FindByUuids(ctx context.Context, uuids []string) ([]model.User, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "batch find users")
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return wrapDBError(err, "update user")
	}
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, uuid string, status int8) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("uuid = ?", uuid).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "update user status uuid=%s", uuid)
	}
	return nil
}
