package chat

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/pkg/constants"
)

// Envelope is one routed push as it travels through the relay in kafka
// mode: the resolved audience plus the event itself.
type Envelope struct {
	TargetIds []string `json:"target_ids,omitempty"`
	Broadcast bool     `json:"broadcast,omitempty"`
	Event     Event    `json:"event"`
}

// EventRelay replicates envelopes across server instances. In channel
// mode there is no relay and delivery stays in-process.
type EventRelay interface {
	Publish(envelope []byte) error
}

// Hub owns the live-connection registry. Connects and disconnects go
// through the Login/Logout channels and are applied by the Start loop;
// fan-out iterates the sync.Map concurrently without blocking either.
type Hub struct {
	clients sync.Map // user uuid -> *UserConn
	Login   chan *UserConn
	Logout  chan *UserConn

	relay    EventRelay
	presence func(userId string, online bool)
}

// NewHub creates a hub. relay may be nil for single-instance mode.
func NewHub(relay EventRelay) *Hub {
	return &Hub{
		Login:  make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout: make(chan *UserConn, constants.CHANNEL_SIZE),
		relay:  relay,
	}
}

// OnPresence installs the callback invoked when a user gains their first
// live session or loses their last one. Set before Start.
func (h *Hub) OnPresence(fn func(userId string, online bool)) {
	h.presence = fn
}

func (h *Hub) notifyPresence(userId string, online bool) {
	if h.presence != nil {
		h.presence(userId, online)
	}
}

// Start runs the registry loop. Call in a goroutine; closing Login stops it.
func (h *Hub) Start() {
	for {
		select {
		case client, ok := <-h.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			// A reconnect replaces the previous session for the same user.
			if prev, loaded := h.clients.Load(client.Uuid); loaded {
				if prevConn, ok := prev.(*UserConn); ok && prevConn != client {
					prevConn.CloseSend()
				}
			}
			h.clients.Store(client.Uuid, client)
			h.notifyPresence(client.Uuid, true)
			zap.L().Info("client connected", zap.String("user", client.Uuid))

		case client, ok := <-h.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			// Only drop the registry entry if it still points at this
			// session; a newer connection may have replaced it already,
			// in which case the user never went offline.
			if cur, loaded := h.clients.Load(client.Uuid); loaded && cur == client {
				h.clients.Delete(client.Uuid)
				h.notifyPresence(client.Uuid, false)
			}
			client.CloseSend()
			zap.L().Info("client disconnected", zap.String("user", client.Uuid))
		}
	}
}

// GetClient returns the live connection for a user, or nil.
func (h *Hub) GetClient(userId string) *UserConn {
	if value, ok := h.clients.Load(userId); ok {
		if client, ok := value.(*UserConn); ok {
			return client
		}
	}
	return nil
}

// IsOnline reports whether a user has a live connection on this instance.
func (h *Hub) IsOnline(userId string) bool {
	return h.GetClient(userId) != nil
}

func (h *Hub) PushToUser(userId string, event Event) {
	h.dispatch(Envelope{TargetIds: []string{userId}, Event: event})
}

func (h *Hub) PushToUsers(userIds []string, event Event) {
	if len(userIds) == 0 {
		return
	}
	h.dispatch(Envelope{TargetIds: userIds, Event: event})
}

func (h *Hub) Broadcast(event Event) {
	h.dispatch(Envelope{Broadcast: true, Event: event})
}

// dispatch hands the envelope to the relay when one is configured; the
// relay consumer (this instance included) performs local delivery. With
// no relay, delivery happens directly.
func (h *Hub) dispatch(envelope Envelope) {
	if h.relay != nil {
		data, err := json.Marshal(envelope)
		if err != nil {
			zap.L().Error("marshal push envelope", zap.Error(err))
			return
		}
		if err := h.relay.Publish(data); err != nil {
			zap.L().Error("relay publish failed, delivering locally", zap.Error(err))
			h.DeliverLocal(envelope)
		}
		return
	}
	h.DeliverLocal(envelope)
}

// DeliverLocal writes the event to the target connections on this
// instance. Sends are non-blocking: a session whose buffer is full drops
// the push rather than stalling fan-out for everyone else.
func (h *Hub) DeliverLocal(envelope Envelope) {
	data, err := json.Marshal(envelope.Event)
	if err != nil {
		zap.L().Error("marshal push event", zap.Error(err))
		return
	}

	if envelope.Broadcast {
		h.clients.Range(func(_, value any) bool {
			if client, ok := value.(*UserConn); ok {
				client.Send(data)
			}
			return true
		})
		return
	}

	for _, userId := range envelope.TargetIds {
		if client := h.GetClient(userId); client != nil {
			client.Send(data)
		}
	}
}
