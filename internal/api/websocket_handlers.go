// internal/api/websocket_handlers.go
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

// WorkspaceWebSocket upgrades the connection and keeps the tab
// subscribed to workspace events until it disconnects.
func (h *Handler) WorkspaceWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := &EventClient{
		conn:      conn,
		clientID:  uuid.NewString(),
		send:      make(chan []byte, 256),
		lastPing:  time.Now().UnixNano(),
		createdAt: time.Now(),
	}

	select {
	case eventHub.register <- client:
	default:
		utils.GetLogger().Warn("websocket register queue full, connection refused", nil)
		conn.Close()
		return
	}

	go h.writePump(client)
	h.readPump(client)
}

// readPump drains client frames and keeps the ping bookkeeping fresh.
// Incoming frames carry no commands; the API surface is HTTP.
func (h *Handler) readPump(client *EventClient) {
	defer func() {
		select {
		case eventHub.unregister <- client:
		case <-time.After(time.Second):
		}
		client.Close()
	}()

	client.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.UpdatePing()
		client.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.GetLogger().Debugf("websocket read error: %v", err)
			}
			return
		}
		client.UpdatePing()
		client.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	}
}

// writePump owns the send channel: it forwards queued events and pings
// the client on an interval.
func (h *Handler) writePump(client *EventClient) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		client.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetWebSocketStatus reports hub state, for debugging.
func (h *Handler) GetWebSocketStatus(c *gin.Context) {
	h.Response.Success(c, eventHub.Status())
}
