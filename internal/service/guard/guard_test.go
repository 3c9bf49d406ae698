package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

func newTestGuard(t *testing.T) (*Guard, *mysql.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.Migrate(db))

	repos := mysql.NewRepositories(db)
	return NewGuard(repos.Friendship, repos.UserBlock, repos.GroupMember), repos
}

func TestRequireSelf(t *testing.T) {
	g, _ := newTestGuard(t)
	assert.NoError(t, g.RequireSelf("U1", "U1"))
	assert.True(t, errorx.IsCode(g.RequireSelf("U1", "U2"), errorx.CodeForbidden))
}

func TestRequireSendPrivateDirectionality(t *testing.T) {
	g, repos := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, repos.UserBlock.Create(ctx, &model.UserBlock{
		OwnerId: "U2", BlockedId: "U1", BlockedDate: time.Now(),
	}))

	// U2 blocked U1: U1 may not send to U2.
	err := g.RequireSendPrivate(ctx, "U1", "U2")
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	// The blocker's own sends are not stopped by their block.
	assert.NoError(t, g.RequireSendPrivate(ctx, "U2", "U1"))
}

func TestRequireFriend(t *testing.T) {
	g, repos := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, repos.Friendship.Create(ctx, &model.Friendship{OwnerId: "U1", FriendId: "U2"}))

	assert.NoError(t, g.RequireFriend(ctx, "U1", "U2"))
	err := g.RequireFriend(ctx, "U1", "U3")
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))
}

func TestRequireMemberAndAdmin(t *testing.T) {
	g, repos := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U1", IsAdmin: true}))
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U2"}))

	member, err := g.RequireMember(ctx, "G1", "U2")
	require.NoError(t, err)
	assert.False(t, member.IsAdmin)

	_, err = g.RequireMember(ctx, "G1", "U3")
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	_, err = g.RequireAdmin(ctx, "G1", "U1")
	assert.NoError(t, err)
	_, err = g.RequireAdmin(ctx, "G1", "U2")
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))
}

func TestRequireMemberAction(t *testing.T) {
	g, repos := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U1", IsAdmin: true}))
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U2"}))
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U3"}))

	// Admin on anyone, member on self only.
	assert.NoError(t, g.RequireMemberAction(ctx, "G1", "U1", "U3"))
	assert.NoError(t, g.RequireMemberAction(ctx, "G1", "U2", "U2"))
	err := g.RequireMemberAction(ctx, "G1", "U2", "U3")
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))
}

func TestRequireCanMarkPrivateRead(t *testing.T) {
	g, _ := newTestGuard(t)
	msg := &model.Message{Uuid: 1, SenderId: "U1", ReceiveId: "U2"}

	assert.NoError(t, g.RequireCanMarkPrivateRead(msg, "U2"))
	assert.True(t, errorx.IsCode(g.RequireCanMarkPrivateRead(msg, "U1"), errorx.CodeForbidden))
	assert.True(t, errorx.IsCode(g.RequireCanMarkPrivateRead(msg, "U3"), errorx.CodeForbidden))
}

func TestRequireCanMarkGroupRead(t *testing.T) {
	g, repos := newTestGuard(t)
	ctx := context.Background()
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U1"}))
	require.NoError(t, repos.GroupMember.Create(ctx, &model.GroupMember{GroupUuid: "G1", UserUuid: "U2"}))
	msg := &model.Message{Uuid: 1, SenderId: "U1", ReceiveId: "G1"}

	assert.NoError(t, g.RequireCanMarkGroupRead(ctx, msg, "U2"))
	assert.True(t, errorx.IsCode(g.RequireCanMarkGroupRead(ctx, msg, "U1"), errorx.CodeForbidden))
	assert.True(t, errorx.IsCode(g.RequireCanMarkGroupRead(ctx, msg, "U3"), errorx.CodeForbidden))
}
