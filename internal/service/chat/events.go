// Package chat implements the live-connection hub: the registry of
// connected WebSocket clients and the fan-out of named push events.
package chat

// Push event names. Clients treat every push as an invalidation signal
// and refetch the affected lists rather than applying the payload as a
// delta, so payloads stay thin.
const (
	EventReceivePrivateMessage = "ReceivePrivateMessage"
	EventReceiveGroupMessage   = "ReceiveGroupMessage"
	EventMessageRead           = "MessageRead"
	EventUpdateRelationships   = "UpdateRelationships"
	EventFriendRequestReceived = "FriendRequestReceived"
	EventFriendRequestAccepted = "FriendRequestAccepted"
	EventFriendRequestRejected = "FriendRequestRejected"
	EventFriendRequestCanceled = "FriendRequestCanceled"
	EventFriendRemoved         = "FriendRemoved"
	EventUserBlocked           = "UserBlocked"
	EventUserBlockedByOther    = "UserBlockedByOther"
	EventUserUnblocked         = "UserUnblocked"
	EventNicknameChanged       = "NicknameChanged"
	EventNotifyGroupMembers    = "NotifyGroupMembers"
)

// Event is one named push as written to the WebSocket.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// Notifier is the push surface the service layer depends on. Delivery is
// at-most-once per connected session: a disconnected client misses the
// push and re-derives state from the relationship view on reconnect.
type Notifier interface {
	// PushToUser delivers an event to every live connection of one user.
	PushToUser(userId string, event Event)
	// PushToUsers delivers an event to each listed user.
	PushToUsers(userIds []string, event Event)
	// Broadcast delivers an event to every connected client regardless
	// of audience. NotifyGroupMembers uses this on purpose, see DESIGN.md.
	Broadcast(event Event)
}
