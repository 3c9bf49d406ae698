// Package relationship computes the per-user inbox view: one entry per
// private contact or group with at least one visible message, newest
// thread first. Entries are derived on read from message history plus
// current friendship/membership state and are never persisted.
package relationship

import (
	"sort"
	"time"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/respond"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
)

// ProjectionInput is the materialized state Project works over. The
// caller has already excluded messages the user tombstoned.
type ProjectionInput struct {
	UserId string

	// PrivateMessages are every visible private message the user sent
	// or received, any order.
	PrivateMessages []model.Message
	// Friendships are the user's outgoing edges; a counterpart without
	// an edge is filtered out even if messages remain.
	Friendships []model.Friendship
	// GroupMessages are every visible message of the user's current groups.
	GroupMessages []model.Message
	// Memberships are the user's current group membership rows.
	Memberships []model.GroupMember

	// UsersById and GroupsById resolve counterpart display data.
	UsersById  map[string]model.User
	GroupsById map[string]model.Group
	// GroupReadMarks holds the group message uuids the user has a read
	// mark for. The user's own sends are marked at send time, so absence
	// always means unread-by-user.
	GroupReadMarks map[int64]bool
}

// Project builds the ordered inbox. It is a pure function: all state
// comes in through the input, making the merge auditable and testable
// without a database.
func Project(in ProjectionInput) []respond.RelationshipRespond {
	type timedEntry struct {
		entry respond.RelationshipRespond
		at    time.Time
	}
	entries := make([]timedEntry, 0, len(in.Friendships)+len(in.Memberships))

	friendshipsById := make(map[string]model.Friendship, len(in.Friendships))
	for _, f := range in.Friendships {
		friendshipsById[f.FriendId] = f
	}

	for counterpartId, msg := range latestPerCounterpart(in.PrivateMessages, in.UserId) {
		friendship, isFriend := friendshipsById[counterpartId]
		if !isFriend {
			// The friendship was removed after messages were exchanged;
			// the thread disappears from the inbox, the messages stay.
			continue
		}
		user, ok := in.UsersById[counterpartId]
		if !ok {
			continue
		}
		displayName := friendship.Nickname
		if displayName == "" {
			displayName = user.FullName()
		}
		isSentByUser := msg.SenderId == in.UserId
		entries = append(entries, timedEntry{
			at: msg.SentAt,
			entry: respond.RelationshipRespond{
				IsGroup:            false,
				CounterpartId:      counterpartId,
				DisplayName:        displayName,
				Avatar:             user.Avatar,
				LastMessage:        msg.Content,
				LastMessageTime:    msg.SentAt.Format(time.RFC3339),
				IsSentByUser:       isSentByUser,
				HasNewMessage:      !isSentByUser && !msg.IsRead,
				NotificationsMuted: friendship.NotificationsMuted,
				ChatTheme:          friendship.ChatTheme,
			},
		})
	}

	membershipsByGroup := make(map[string]model.GroupMember, len(in.Memberships))
	for _, m := range in.Memberships {
		membershipsByGroup[m.GroupUuid] = m
	}

	for groupUuid, msg := range latestPerGroup(in.GroupMessages) {
		membership, isMember := membershipsByGroup[groupUuid]
		if !isMember {
			continue
		}
		group, ok := in.GroupsById[groupUuid]
		if !ok {
			continue
		}
		entries = append(entries, timedEntry{
			at: msg.SentAt,
			entry: respond.RelationshipRespond{
				IsGroup:            true,
				CounterpartId:      groupUuid,
				DisplayName:        group.Name,
				Avatar:             group.Avatar,
				LastMessage:        msg.Content,
				LastMessageTime:    msg.SentAt.Format(time.RFC3339),
				IsSentByUser:       msg.SenderId == in.UserId,
				HasNewMessage:      !in.GroupReadMarks[msg.Uuid],
				NotificationsMuted: membership.NotificationsMuted,
				ChatTheme:          group.ChatTheme,
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	result := make([]respond.RelationshipRespond, len(entries))
	for i, e := range entries {
		result[i] = e.entry
	}
	return result
}

// latestPerCounterpart keeps the most recent message per private
// counterpart, snowflake uuid breaking timestamp ties.
func latestPerCounterpart(messages []model.Message, userId string) map[string]model.Message {
	latest := make(map[string]model.Message)
	for _, msg := range messages {
		counterpart := msg.ReceiveId
		if msg.SenderId != userId {
			counterpart = msg.SenderId
		}
		if cur, ok := latest[counterpart]; !ok || newer(msg, cur) {
			latest[counterpart] = msg
		}
	}
	return latest
}

func latestPerGroup(messages []model.Message) map[string]model.Message {
	latest := make(map[string]model.Message)
	for _, msg := range messages {
		if cur, ok := latest[msg.ReceiveId]; !ok || newer(msg, cur) {
			latest[msg.ReceiveId] = msg
		}
	}
	return latest
}

func newer(a, b model.Message) bool {
	if a.SentAt.Equal(b.SentAt) {
		return a.Uuid > b.Uuid
	}
	return a.SentAt.After(b.SentAt)
}
