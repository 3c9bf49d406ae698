package chat

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/pkg/constants"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserConn is one WebSocket session. The connection is push-only: all
// mutations arrive over HTTP, the socket exists for server-to-client
// event delivery and liveness.
type UserConn struct {
	Conn *websocket.Conn
	Uuid string

	sendBack  chan []byte
	closeOnce sync.Once
}

// Send queues an event for the write pump without blocking. A full
// buffer drops the push; the client re-derives state on its next fetch.
func (c *UserConn) Send(data []byte) {
	select {
	case c.sendBack <- data:
	default:
		zap.L().Warn("push buffer full, dropping event", zap.String("user", c.Uuid))
	}
}

// CloseSend shuts the send channel exactly once, terminating the write pump.
func (c *UserConn) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.sendBack)
	})
}

// readPump drains incoming frames to service pings and to notice the
// disconnect. Client payloads over the socket are ignored.
func (c *UserConn) readPump(hub *Hub) {
	defer func() {
		hub.Logout <- c
		_ = c.Conn.Close()
	}()
	c.Conn.SetReadLimit(2048)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("ws read error", zap.String("user", c.Uuid), zap.Error(err))
			}
			return
		}
	}
}

// writePump writes queued events and keeps the connection alive with pings.
func (c *UserConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.sendBack:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				zap.L().Error("ws write error", zap.String("user", c.Uuid), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NewClientInit upgrades the request and registers the session with the hub.
func NewClientInit(c *gin.Context, hub *Hub, clientId string) error {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return err
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		sendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	hub.Login <- client
	go client.readPump(hub)
	go client.writePump()
	return nil
}

// ClientLogout force-disconnects a user's live session, if any.
func ClientLogout(hub *Hub, clientId string) {
	if client := hub.GetClient(clientId); client != nil {
		hub.Logout <- client
		_ = client.Conn.Close()
	}
}
