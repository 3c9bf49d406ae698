package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type groupMemberRepository struct {
	db *gorm.DB
}

func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

func (r *groupMemberRepository) Find(ctx context.Context, groupUuid, userUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.WithContext(ctx).Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "find member group=%s user=%s", groupUuid, userUuid)
	}
	return &member, nil
}

func (r *groupMemberRepository) FindByGroup(ctx context.Context, groupUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.WithContext(ctx).Where("group_uuid = ?", groupUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find members group=%s", groupUuid)
	}
	return members, nil
}

func (r *groupMemberRepository) FindByUser(ctx context.Context, userUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.WithContext(ctx).Where("user_uuid = ?", userUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find memberships of user=%s", userUuid)
	}
	return members, nil
}

func (r *groupMemberRepository) FindGroupUuidsByUser(ctx context.Context, userUuid string) ([]string, error) {
	var groupUuids []string
	if err := r.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("user_uuid = ?", userUuid).
		Pluck("group_uuid", &groupUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "find groups of user=%s", userUuid)
	}
	return groupUuids, nil
}

func (r *groupMemberRepository) Create(ctx context.Context, member *model.GroupMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return wrapDBError(err, "create group member")
	}
	return nil
}

func (r *groupMemberRepository) Update(ctx context.Context, member *model.GroupMember) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		return wrapDBError(err, "update group member")
	}
	return nil
}

// Delete removes the row for good so a user who left can be added back
// without colliding with the (group, user) unique slot.
func (r *groupMemberRepository) Delete(ctx context.Context, groupUuid, userUuid string) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete member group=%s user=%s", groupUuid, userUuid)
	}
	return nil
}

func (r *groupMemberRepository) DeleteByGroup(ctx context.Context, groupUuid string) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("group_uuid = ?", groupUuid).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete members group=%s", groupUuid)
	}
	return nil
}

func (r *groupMemberRepository) CountByGroup(ctx context.Context, groupUuid string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GroupMember{}).Where("group_uuid = ?", groupUuid).Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "count group members")
	}
	return count, nil
}

func (r *groupMemberRepository) CountAdmins(ctx context.Context, groupUuid string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_uuid = ? AND is_admin = ?", groupUuid, true).
		Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "count group admins")
	}
	return count, nil
}
