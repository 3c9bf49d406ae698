package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return NewRepositories(db)
}

func TestNotFoundIsCoded(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.User.FindByUuid(ctx, "U404")
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.Friendship.Find(ctx, "U1", "U2")
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.Message.FindByUuid(ctx, 42)
	assert.True(t, errorx.IsNotFound(err))
}

func TestDeleteBetweenRemovesBothDirections(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.FriendRequest.Create(ctx, &model.FriendRequest{
		Uuid: "F1", SenderId: "U1", ReceiverId: "U2", RequestDate: time.Now(),
	}))
	require.NoError(t, repos.FriendRequest.Create(ctx, &model.FriendRequest{
		Uuid: "F2", SenderId: "U2", ReceiverId: "U1", RequestDate: time.Now(),
	}))

	require.NoError(t, repos.FriendRequest.DeleteBetween(ctx, "U1", "U2"))

	_, err := repos.FriendRequest.FindPending(ctx, "U1", "U2")
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.FriendRequest.FindPending(ctx, "U2", "U1")
	assert.True(t, errorx.IsNotFound(err))
}

func TestExistsBetweenEitherDirection(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.UserBlock.Create(ctx, &model.UserBlock{
		OwnerId: "U1", BlockedId: "U2", BlockedDate: time.Now(),
	}))

	for _, pair := range [][2]string{{"U1", "U2"}, {"U2", "U1"}} {
		exists, err := repos.UserBlock.ExistsBetween(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, exists)
	}

	exists, err := repos.UserBlock.ExistsBetween(ctx, "U1", "U3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateBulkTombstonesIdempotent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.DeletedMessage.CreateBulk(ctx, "U1", nil, time.Now()))

	require.NoError(t, repos.DeletedMessage.CreateBulk(ctx, "U1", []int64{1, 2}, time.Now()))
	// Overlapping uuids must not trip the unique index.
	require.NoError(t, repos.DeletedMessage.CreateBulk(ctx, "U1", []int64{2, 3}, time.Now()))

	uuids, err := repos.DeletedMessage.FindMessageUuidsByUser(ctx, "U1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, uuids)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Transaction(func(tx *Repositories) error {
		if err := tx.Friendship.Create(ctx, &model.Friendship{OwnerId: "U1", FriendId: "U2"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Friendship.Find(ctx, "U1", "U2")
	assert.True(t, errorx.IsNotFound(err))
}

func TestFindPrivateBetweenIsOrderedAndScoped(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Message.Create(ctx, &model.Message{
		Uuid: 2, SenderId: "U2", ReceiveId: "U1", Content: "second", SentAt: base.Add(time.Minute),
	}))
	require.NoError(t, repos.Message.Create(ctx, &model.Message{
		Uuid: 1, SenderId: "U1", ReceiveId: "U2", Content: "first", SentAt: base,
	}))
	// Unrelated thread.
	require.NoError(t, repos.Message.Create(ctx, &model.Message{
		Uuid: 3, SenderId: "U1", ReceiveId: "U3", Content: "noise", SentAt: base,
	}))

	messages, err := repos.Message.FindPrivateBetween(ctx, "U1", "U2")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestMarkReadSetsTimestamp(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Message.Create(ctx, &model.Message{
		Uuid: 1, SenderId: "U1", ReceiveId: "U2", Content: "hi", SentAt: time.Now(),
	}))
	require.NoError(t, repos.Message.MarkRead(ctx, 1, time.Now()))

	msg, err := repos.Message.FindByUuid(ctx, 1)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
	assert.True(t, msg.ReadAt.Valid)
}
