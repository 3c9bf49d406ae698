package relationship

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
)

func privateMsg(uuid int64, sender, receiver, content string, at time.Time, read bool) model.Message {
	return model.Message{
		Uuid:      uuid,
		SenderId:  sender,
		ReceiveId: receiver,
		Content:   content,
		SentAt:    at,
		IsRead:    read,
	}
}

func testUser(uuid, first string) model.User {
	return model.User{Uuid: uuid, FirstName: first, LastName: "Tester", ShowStatus: true}
}

func TestProjectOrdersNewestThreadFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := Project(ProjectionInput{
		UserId: "U1",
		PrivateMessages: []model.Message{
			privateMsg(1, "U2", "U1", "old thread", base, true),
			privateMsg(2, "U1", "U3", "newer thread", base.Add(time.Minute), false),
		},
		Friendships: []model.Friendship{
			{OwnerId: "U1", FriendId: "U2"},
			{OwnerId: "U1", FriendId: "U3"},
		},
		GroupMessages: []model.Message{
			{Uuid: 3, SenderId: "U4", ReceiveId: "G1", Content: "newest", SentAt: base.Add(2 * time.Minute)},
		},
		Memberships: []model.GroupMember{{GroupUuid: "G1", UserUuid: "U1"}},
		UsersById: map[string]model.User{
			"U2": testUser("U2", "bob"),
			"U3": testUser("U3", "carol"),
		},
		GroupsById:     map[string]model.Group{"G1": {Uuid: "G1", Name: "team"}},
		GroupReadMarks: map[int64]bool{},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "G1", out[0].CounterpartId)
	assert.Equal(t, "U3", out[1].CounterpartId)
	assert.Equal(t, "U2", out[2].CounterpartId)
}

func TestProjectKeepsOnlyLatestMessagePerThread(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := Project(ProjectionInput{
		UserId: "U1",
		PrivateMessages: []model.Message{
			privateMsg(1, "U2", "U1", "first", base, true),
			privateMsg(2, "U1", "U2", "second", base.Add(time.Minute), false),
			privateMsg(3, "U2", "U1", "third", base.Add(2*time.Minute), false),
		},
		Friendships: []model.Friendship{{OwnerId: "U1", FriendId: "U2"}},
		UsersById:   map[string]model.User{"U2": testUser("U2", "bob")},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "third", out[0].LastMessage)
	assert.False(t, out[0].IsSentByUser)
	assert.True(t, out[0].HasNewMessage)
}

func TestProjectSnowflakeBreaksTimestampTies(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := Project(ProjectionInput{
		UserId: "U1",
		PrivateMessages: []model.Message{
			privateMsg(10, "U2", "U1", "earlier id", at, false),
			privateMsg(20, "U2", "U1", "later id", at, false),
		},
		Friendships: []model.Friendship{{OwnerId: "U1", FriendId: "U2"}},
		UsersById:   map[string]model.User{"U2": testUser("U2", "bob")},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "later id", out[0].LastMessage)
}

func TestProjectHasNewMessageFlags(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("own private message is never new", func(t *testing.T) {
		out := Project(ProjectionInput{
			UserId: "U1",
			PrivateMessages: []model.Message{
				privateMsg(1, "U1", "U2", "hi", base, false),
			},
			Friendships: []model.Friendship{{OwnerId: "U1", FriendId: "U2"}},
			UsersById:   map[string]model.User{"U2": testUser("U2", "bob")},
		})
		require.Len(t, out, 1)
		assert.True(t, out[0].IsSentByUser)
		assert.False(t, out[0].HasNewMessage)
	})

	t.Run("read private message is not new", func(t *testing.T) {
		out := Project(ProjectionInput{
			UserId: "U1",
			PrivateMessages: []model.Message{
				privateMsg(1, "U2", "U1", "hi", base, true),
			},
			Friendships: []model.Friendship{{OwnerId: "U1", FriendId: "U2"}},
			UsersById:   map[string]model.User{"U2": testUser("U2", "bob")},
		})
		require.Len(t, out, 1)
		assert.False(t, out[0].HasNewMessage)
	})

	t.Run("group message is new until the user's read mark exists", func(t *testing.T) {
		in := ProjectionInput{
			UserId: "U1",
			GroupMessages: []model.Message{
				{Uuid: 5, SenderId: "U2", ReceiveId: "G1", Content: "hi", SentAt: base},
			},
			Memberships:    []model.GroupMember{{GroupUuid: "G1", UserUuid: "U1"}},
			GroupsById:     map[string]model.Group{"G1": {Uuid: "G1", Name: "team"}},
			GroupReadMarks: map[int64]bool{},
		}
		out := Project(in)
		require.Len(t, out, 1)
		assert.True(t, out[0].HasNewMessage)

		in.GroupReadMarks = map[int64]bool{5: true}
		out = Project(in)
		require.Len(t, out, 1)
		assert.False(t, out[0].HasNewMessage)
	})
}

func TestProjectDropsThreadsWithoutFriendship(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Messages survive a friend removal but the thread leaves the inbox.
	out := Project(ProjectionInput{
		UserId: "U1",
		PrivateMessages: []model.Message{
			privateMsg(1, "U2", "U1", "hi", base, false),
		},
		Friendships: nil,
		UsersById:   map[string]model.User{"U2": testUser("U2", "bob")},
	})
	assert.Empty(t, out)
}

func TestProjectDropsGroupsWithoutMembership(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := Project(ProjectionInput{
		UserId: "U1",
		GroupMessages: []model.Message{
			{Uuid: 1, SenderId: "U2", ReceiveId: "G1", Content: "hi", SentAt: base},
		},
		Memberships: nil,
		GroupsById:  map[string]model.Group{"G1": {Uuid: "G1", Name: "team"}},
	})
	assert.Empty(t, out)
}

func TestProjectAppliesNicknameAndEdgeSettings(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	out := Project(ProjectionInput{
		UserId: "U1",
		PrivateMessages: []model.Message{
			privateMsg(1, "U2", "U1", "hi", base, false),
		},
		Friendships: []model.Friendship{{
			OwnerId:            "U1",
			FriendId:           "U2",
			Nickname:           "Bobby",
			NotificationsMuted: true,
			ChatTheme:          "dark",
		}},
		UsersById: map[string]model.User{"U2": testUser("U2", "bob")},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Bobby", out[0].DisplayName)
	assert.True(t, out[0].NotificationsMuted)
	assert.Equal(t, "dark", out[0].ChatTheme)
}

func TestProjectEmptyInput(t *testing.T) {
	out := Project(ProjectionInput{UserId: "U1"})
	assert.Empty(t, out)
}
