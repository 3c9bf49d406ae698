package chat

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConn(uuid string) *UserConn {
	return &UserConn{Uuid: uuid, sendBack: make(chan []byte, 8)}
}

func receivedEventName(t *testing.T, c *UserConn) string {
	t.Helper()
	select {
	case data := <-c.sendBack:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event.Name
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return ""
	}
}

func assertNothingDelivered(t *testing.T, c *UserConn) {
	t.Helper()
	select {
	case data := <-c.sendBack:
		t.Fatalf("unexpected delivery: %s", data)
	default:
	}
}

func TestDeliverLocalTargetsOnly(t *testing.T) {
	hub := NewHub(nil)
	alice := testConn("U1")
	bob := testConn("U2")
	hub.clients.Store(alice.Uuid, alice)
	hub.clients.Store(bob.Uuid, bob)

	hub.PushToUser("U1", Event{Name: EventFriendRequestReceived})

	assert.Equal(t, EventFriendRequestReceived, receivedEventName(t, alice))
	assertNothingDelivered(t, bob)
}

func TestDeliverLocalUnknownTargetDropped(t *testing.T) {
	hub := NewHub(nil)
	alice := testConn("U1")
	hub.clients.Store(alice.Uuid, alice)

	// Offline users simply miss the push.
	hub.PushToUser("U404", Event{Name: EventUpdateRelationships})
	assertNothingDelivered(t, alice)
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub(nil)
	alice := testConn("U1")
	bob := testConn("U2")
	hub.clients.Store(alice.Uuid, alice)
	hub.clients.Store(bob.Uuid, bob)

	hub.Broadcast(Event{Name: EventNotifyGroupMembers})

	assert.Equal(t, EventNotifyGroupMembers, receivedEventName(t, alice))
	assert.Equal(t, EventNotifyGroupMembers, receivedEventName(t, bob))
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	conn := &UserConn{Uuid: "U1", sendBack: make(chan []byte, 1)}
	conn.Send([]byte("first"))
	conn.Send([]byte("second")) // must not block

	assert.Equal(t, "first", string(<-conn.sendBack))
	assertNothingDelivered(t, conn)
}

type fakeRelay struct {
	published chan []byte
}

func (f *fakeRelay) Publish(envelope []byte) error {
	f.published <- envelope
	return nil
}

func TestDispatchGoesThroughRelay(t *testing.T) {
	relay := &fakeRelay{published: make(chan []byte, 1)}
	hub := NewHub(relay)
	alice := testConn("U1")
	hub.clients.Store(alice.Uuid, alice)

	hub.PushToUser("U1", Event{Name: EventMessageRead})

	// With a relay configured nothing is delivered directly; the relay
	// consumer performs local delivery on every instance.
	assertNothingDelivered(t, alice)

	select {
	case data := <-relay.published:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(data, &envelope))
		assert.Equal(t, []string{"U1"}, envelope.TargetIds)
		assert.Equal(t, EventMessageRead, envelope.Event.Name)
	case <-time.After(time.Second):
		t.Fatal("nothing published to the relay")
	}
}

func TestStartReconnectReplacesSession(t *testing.T) {
	hub := NewHub(nil)
	go hub.Start()
	defer close(hub.Login)

	first := testConn("U1")
	hub.Login <- first
	require.Eventually(t, func() bool { return hub.GetClient("U1") == first }, time.Second, 5*time.Millisecond)

	second := testConn("U1")
	hub.Login <- second
	require.Eventually(t, func() bool { return hub.GetClient("U1") == second }, time.Second, 5*time.Millisecond)

	// The replaced session's send channel is closed.
	_, open := <-first.sendBack
	assert.False(t, open)

	// A stale logout from the first session must not evict the second.
	hub.Logout <- first
	require.Eventually(t, func() bool { return hub.GetClient("U1") == second }, time.Second, 5*time.Millisecond)

	hub.Logout <- second
	require.Eventually(t, func() bool { return !hub.IsOnline("U1") }, time.Second, 5*time.Millisecond)
}

func TestPresenceFollowsRegistry(t *testing.T) {
	hub := NewHub(nil)
	var mu sync.Mutex
	var flips []bool
	hub.OnPresence(func(userId string, online bool) {
		mu.Lock()
		defer mu.Unlock()
		if userId == "U1" {
			flips = append(flips, online)
		}
	})
	go hub.Start()
	defer close(hub.Login)

	snapshot := func() []bool {
		mu.Lock()
		defer mu.Unlock()
		return append([]bool(nil), flips...)
	}

	first := testConn("U1")
	hub.Login <- first
	require.Eventually(t, func() bool { return len(snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []bool{true}, snapshot())

	// A reconnect replaces the session; the stale logout must not flap
	// the user offline.
	second := testConn("U1")
	hub.Login <- second
	hub.Logout <- first
	require.Eventually(t, func() bool { return hub.GetClient("U1") == second }, time.Second, 5*time.Millisecond)
	assert.NotContains(t, snapshot(), false)

	// Dropping the live session flips offline.
	hub.Logout <- second
	require.Eventually(t, func() bool {
		s := snapshot()
		return len(s) > 0 && !s[len(s)-1]
	}, time.Second, 5*time.Millisecond)
	assert.False(t, hub.IsOnline("U1"))
}
