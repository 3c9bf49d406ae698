package group

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/guard"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
)

type fakeNotifier struct {
	mu         sync.Mutex
	pushes     map[string][]chat.Event
	broadcasts []chat.Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{pushes: make(map[string][]chat.Event)}
}

func (f *fakeNotifier) PushToUser(userId string, event chat.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes[userId] = append(f.pushes[userId], event)
}

func (f *fakeNotifier) PushToUsers(userIds []string, event chat.Event) {
	for _, id := range userIds {
		f.PushToUser(id, event)
	}
}

func (f *fakeNotifier) Broadcast(event chat.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, event)
}

func newTestService(t *testing.T) (*Service, *mysql.Repositories, *fakeNotifier) {
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
	g := guard.NewGuard(repos.Friendship, repos.UserBlock, repos.GroupMember)
	notifier := newFakeNotifier()
	return NewService(repos, g, notifier, nil), repos, notifier
}

func seedUser(t *testing.T, repos *mysql.Repositories, uuid, name string) {
	t.Helper()
	require.NoError(t, repos.User.Create(context.Background(), &model.User{
		Uuid:      uuid,
		Username:  name,
		FirstName: name,
		LastName:  "Tester",
		TagName:   "@" + name,
		Password:  "irrelevant",
	}))
}

func createGroup(t *testing.T, svc *Service, creator string, members ...string) string {
	t.Helper()
	groupUuid, err := svc.CreateGroup(context.Background(), request.CreateGroupRequest{
		UserId:      creator,
		Name:        "team",
		MemberUuids: members,
	})
	require.NoError(t, err)
	return groupUuid
}

func TestCreateGroupCreatorIsAdmin(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")

	groupUuid := createGroup(t, svc, "U1", "U2")

	creator, err := repos.GroupMember.Find(ctx, groupUuid, "U1")
	require.NoError(t, err)
	assert.True(t, creator.IsAdmin)

	member, err := repos.GroupMember.Find(ctx, groupUuid, "U2")
	require.NoError(t, err)
	assert.False(t, member.IsAdmin)
}

func TestAddMemberAdminOnlyAndNoDuplicates(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	seedUser(t, repos, "U3", "carol")
	groupUuid := createGroup(t, svc, "U1", "U2")

	err := svc.AddMember(ctx, request.GroupMemberRequest{UserId: "U2", GroupUuid: groupUuid, MemberUuid: "U3"})
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	require.NoError(t, svc.AddMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U3"}))

	err = svc.AddMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U3"})
	assert.True(t, errorx.IsCode(err, errorx.CodeConflict))
}

func TestRemoveMemberAuthorization(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	seedUser(t, repos, "U3", "carol")
	groupUuid := createGroup(t, svc, "U1", "U2", "U3")

	// A plain member cannot remove another member.
	err := svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U2", GroupUuid: groupUuid, MemberUuid: "U3"})
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	// But can leave themselves.
	require.NoError(t, svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U2", GroupUuid: groupUuid, MemberUuid: "U2"}))
	_, err = repos.GroupMember.Find(ctx, groupUuid, "U2")
	assert.True(t, errorx.IsNotFound(err))

	// And an admin can remove anyone.
	require.NoError(t, svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U3"}))
}

func TestRemoveLastAdminPromotesRemainingMember(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	seedUser(t, repos, "U3", "carol")
	groupUuid := createGroup(t, svc, "U1", "U2", "U3")

	// The sole admin leaves; exactly one of the remaining members must
	// hold admin afterwards.
	require.NoError(t, svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U1"}))

	admins, err := repos.GroupMember.CountAdmins(ctx, groupUuid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	remaining, err := repos.GroupMember.CountByGroup(ctx, groupUuid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining)
}

func TestRemoveLastMemberDissolvesGroup(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	groupUuid := createGroup(t, svc, "U1")

	require.NoError(t, repos.Message.Create(ctx, &model.Message{
		Uuid: 1, SenderId: "U1", ReceiveId: groupUuid, Content: "bye", SentAt: time.Now(),
	}))
	require.NoError(t, repos.ReadStatus.Create(ctx, &model.MessageReadStatus{
		MessageUuid: 1, UserUuid: "U1", ReadAt: time.Now(),
	}))

	require.NoError(t, svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U1"}))

	_, err := repos.Group.FindByUuid(ctx, groupUuid)
	assert.True(t, errorx.IsNotFound(err))

	messages, err := repos.Message.FindByGroup(ctx, groupUuid)
	require.NoError(t, err)
	assert.Empty(t, messages)

	exists, err := repos.ReadStatus.Exists(ctx, 1, "U1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPromoteAndRevokeAdmin(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	require.NoError(t, svc.PromoteAdmin(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U2"}))
	member, err := repos.GroupMember.Find(ctx, groupUuid, "U2")
	require.NoError(t, err)
	assert.True(t, member.IsAdmin)

	err = svc.PromoteAdmin(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U2"})
	assert.True(t, errorx.IsCode(err, errorx.CodeConflict))

	require.NoError(t, svc.RevokeAdmin(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U2"}))
	member, err = repos.GroupMember.Find(ctx, groupUuid, "U2")
	require.NoError(t, err)
	assert.False(t, member.IsAdmin)
}

func TestRevokeLastAdminRejected(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	err := svc.RevokeAdmin(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U1"})
	assert.True(t, errorx.IsCode(err, errorx.CodeConflict))
}

func TestDeleteGroupAdminOnly(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	err := svc.DeleteGroup(ctx, "U2", groupUuid)
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	require.NoError(t, svc.DeleteGroup(ctx, "U1", groupUuid))
	_, err = repos.Group.FindByUuid(ctx, groupUuid)
	assert.True(t, errorx.IsNotFound(err))
}

func TestNotifyMembersBroadcastsGlobally(t *testing.T) {
	svc, repos, notifier := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	err := svc.NotifyMembers(ctx, request.NotifyGroupMembersRequest{UserId: "U3", GroupUuid: groupUuid, Message: "hi"})
	assert.True(t, errorx.IsCode(err, errorx.CodeForbidden))

	require.NoError(t, svc.NotifyMembers(ctx, request.NotifyGroupMembersRequest{UserId: "U2", GroupUuid: groupUuid, Message: "meeting at 5"}))
	require.Len(t, notifier.broadcasts, 1)
	assert.Equal(t, chat.EventNotifyGroupMembers, notifier.broadcasts[0].Name)
}

func TestGetGroups(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	groups, err := svc.GetGroups(ctx, "U2")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, groupUuid, groups[0].GroupUuid)
	assert.Equal(t, int64(2), groups[0].MemberCount)
	assert.False(t, groups[0].IsAdmin)
}

func TestRejoinGroupAfterLeaving(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	groupUuid := createGroup(t, svc, "U1", "U2")

	// U2 leaves, then the admin adds them back; the old membership row
	// must not keep the (group, user) slot occupied.
	require.NoError(t, svc.RemoveMember(ctx, request.GroupMemberRequest{UserId: "U2", GroupUuid: groupUuid, MemberUuid: "U2"}))
	require.NoError(t, svc.AddMember(ctx, request.GroupMemberRequest{UserId: "U1", GroupUuid: groupUuid, MemberUuid: "U2"}))

	member, err := repos.GroupMember.Find(ctx, groupUuid, "U2")
	require.NoError(t, err)
	assert.False(t, member.IsAdmin)
	count, err := repos.GroupMember.CountByGroup(ctx, groupUuid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
