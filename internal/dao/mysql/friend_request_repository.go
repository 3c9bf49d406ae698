package mysql

import (
	"context"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"gorm.io/gorm"
)

type friendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) FindByUuid(ctx context.Context, uuid string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&request).Error; err != nil {
		return nil, wrapDBErrorf(err, "find friend request uuid=%s", uuid)
	}
	return &request, nil
}

func (r *friendRequestRepository) FindPending(ctx context.Context, senderId, receiverId string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderId, receiverId, model.RequestPending).
		First(&request).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending request %s->%s", senderId, receiverId)
	}
	return &request, nil
}

func (r *friendRequestRepository) FindPendingByReceiver(ctx context.Context, receiverId string) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverId, model.RequestPending).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending requests receiver=%s", receiverId)
	}
	return requests, nil
}

func (r *friendRequestRepository) FindPendingBySender(ctx context.Context, senderId string) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", senderId, model.RequestPending).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending requests sender=%s", senderId)
	}
	return requests, nil
}

func (r *friendRequestRepository) Create(ctx context.Context, request *model.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return wrapDBError(err, "create friend request")
	}
	return nil
}

// Delete removes the row for good. Resolved requests must free the
// (sender, receiver) unique slot so the pair can be requested again.
func (r *friendRequestRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("uuid = ?", uuid).Delete(&model.FriendRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "delete friend request uuid=%s", uuid)
	}
	return nil
}

func (r *friendRequestRepository) DeleteBetween(ctx context.Context, userA, userB string) error {
	if err := r.db.WithContext(ctx).Unscoped().
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Delete(&model.FriendRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "delete friend requests between %s/%s", userA, userB)
	}
	return nil
}
