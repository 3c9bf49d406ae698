package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Find(ctx context.Context, ownerId, friendId string) (*model.Friendship, error) {
	var friendship model.Friendship
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND friend_id = ?", ownerId, friendId).First(&friendship).Error; err != nil {
		return nil, wrapDBErrorf(err, "find friendship owner=%s friend=%s", ownerId, friendId)
	}
	return &friendship, nil
}

func (r *friendshipRepository) FindByOwner(ctx context.Context, ownerId string) ([]model.Friendship, error) {
	var friendships []model.Friendship
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Find(&friendships).Error; err != nil {
		return nil, wrapDBErrorf(err, "find friendships owner=%s", ownerId)
	}
	return friendships, nil
}

func (r *friendshipRepository) Create(ctx context.Context, friendship *model.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return wrapDBError(err, "create friendship")
	}
	return nil
}

func (r *friendshipRepository) Update(ctx context.Context, friendship *model.Friendship) error {
	if err := r.db.WithContext(ctx).Save(friendship).Error; err != nil {
		return wrapDBError(err, "update friendship")
	}
	return nil
}

// DeletePair removes both directions for good, freeing the
// (owner, friend) unique slots so the pair can become friends again.
// Callers run it inside a transaction so the pair never survives
// half-removed.
func (r *friendshipRepository) DeletePair(ctx context.Context, userA, userB string) error {
	if err := r.db.WithContext(ctx).Unscoped().
		Where("(owner_id = ? AND friend_id = ?) OR (owner_id = ? AND friend_id = ?)", userA, userB, userB, userA).
		Delete(&model.Friendship{}).Error; err != nil {
		return wrapDBErrorf(err, "delete friendship pair %s/%s", userA, userB)
	}
	return nil
}
