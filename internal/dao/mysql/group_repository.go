package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) FindByUuid(ctx context.Context, uuid string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&group).Error; err != nil {
		return nil, wrapDBErrorf(err, "find group uuid=%s", uuid)
	}
	return &group, nil
}

func (r *groupRepository) FindByUuids(ctx context.Context, uuids []string) ([]model.Group, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var groups []model.Group
	if err := r.db.WithContext(ctx).Where("uuid IN ?", uuids).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "batch find groups")
	}
	return groups, nil
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return wrapDBError(err, "create group")
	}
	return nil
}

func (r *groupRepository) Update(ctx context.Context, group *model.Group) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return wrapDBError(err, "update group")
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&model.Group{}).Error; err != nil {
		return wrapDBErrorf(err, "delete group uuid=%s", uuid)
	}
	return nil
}
