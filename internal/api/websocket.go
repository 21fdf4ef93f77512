// internal/api/websocket.go
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The workspace runs on localhost; same-origin enforcement
		// happens at the reverse proxy in hosted setups.
		return true
	},
}

// EventClient is one connected workspace tab. lastPing is unix nanos,
// written by the read pump and read by the hub cleanup, so it is
// accessed atomically.
type EventClient struct {
	conn      *websocket.Conn
	clientID  string
	send      chan []byte
	closed    int32
	lastPing  int64
	createdAt time.Time
}

// EventHub fans workspace events out to every connected tab: chat
// replies, finished generations and trash purges, so open tabs stay in
// sync without polling.
type EventHub struct {
	clients       map[*websocket.Conn]*EventClient
	broadcast     chan []byte
	register      chan *EventClient
	unregister    chan *EventClient
	mutex         sync.RWMutex
	pingTimeout   time.Duration
	cleanupTicker *time.Ticker
}

var eventHub = &EventHub{
	clients:     make(map[*websocket.Conn]*EventClient),
	broadcast:   make(chan []byte, 256),
	register:    make(chan *EventClient, 256),
	unregister:  make(chan *EventClient, 256),
	pingTimeout: 60 * time.Second,
}

func init() {
	go eventHub.run()
}

// Close marks the client closed and closes the underlying connection.
// The send channel is owned by the write pump and closed there.
func (client *EventClient) Close() {
	if atomic.CompareAndSwapInt32(&client.closed, 0, 1) {
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

func (client *EventClient) IsClosed() bool {
	return atomic.LoadInt32(&client.closed) == 1
}

func (client *EventClient) UpdatePing() {
	atomic.StoreInt64(&client.lastPing, time.Now().UnixNano())
}

func (client *EventClient) LastPing() time.Time {
	return time.Unix(0, atomic.LoadInt64(&client.lastPing))
}

func (client *EventClient) IsExpired(timeout time.Duration) bool {
	if timeout <= 0 {
		return true
	}
	return time.Since(client.LastPing()) > timeout
}

func (hub *EventHub) run() {
	hub.cleanupTicker = time.NewTicker(30 * time.Second)
	defer hub.cleanupTicker.Stop()

	for {
		select {
		case client := <-hub.register:
			hub.registerClient(client)

		case client := <-hub.unregister:
			hub.unregisterClient(client)

		case <-hub.cleanupTicker.C:
			hub.cleanupExpiredClients()

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

func (hub *EventHub) registerClient(client *EventClient) {
	if client == nil {
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	hub.clients[client.conn] = client
	client.UpdatePing()

	utils.GetLogger().Debugf("workspace client connected: %s", client.clientID)
}

func (hub *EventHub) unregisterClient(client *EventClient) {
	if client == nil {
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	delete(hub.clients, client.conn)

	if !client.IsClosed() {
		client.Close()
	}

	utils.GetLogger().Debugf("workspace client disconnected: %s", client.clientID)
}

func (hub *EventHub) cleanupExpiredClients() {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, client := range hub.clients {
		if client.IsClosed() || client.IsExpired(hub.pingTimeout) {
			delete(hub.clients, conn)
			if !client.IsClosed() {
				client.Close()
			}
		}
	}
}

func (hub *EventHub) broadcastMessage(message []byte) {
	hub.mutex.RLock()
	active := make([]*EventClient, 0, len(hub.clients))
	for _, client := range hub.clients {
		if !client.IsClosed() {
			active = append(active, client)
		}
	}
	hub.mutex.RUnlock()

	for _, client := range active {
		select {
		case client.send <- message:
		default:
			// Slow consumer, drop the connection rather than block
			// the hub loop.
			client.Close()
		}
	}
}

// Broadcast serializes an event and queues it for every connected tab.
func (hub *EventHub) Broadcast(eventType string, payload map[string]interface{}) {
	message := map[string]interface{}{
		"type":      eventType,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	for key, value := range payload {
		message[key] = value
	}

	msgBytes, err := json.Marshal(message)
	if err != nil {
		utils.GetLogger().Errorf("failed to serialize workspace event: %v", err)
		return
	}

	select {
	case hub.broadcast <- msgBytes:
	default:
		utils.GetLogger().Warn("workspace event queue full, event dropped", nil)
	}
}

// Status reports the hub state for the debug endpoint.
func (hub *EventHub) Status() map[string]interface{} {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	clients := make([]interface{}, 0, len(hub.clients))
	for _, client := range hub.clients {
		if client != nil && !client.IsClosed() {
			clients = append(clients, map[string]interface{}{
				"client_id":    client.clientID,
				"connected_at": client.createdAt.Format(time.RFC3339),
				"last_ping":    client.LastPing().Format(time.RFC3339),
			})
		}
	}

	return map[string]interface{}{
		"total_connections":    len(clients),
		"clients":              clients,
		"ping_timeout_seconds": int(hub.pingTimeout.Seconds()),
	}
}
