package websockets

import (
	"time"

	"savvy/internal/events"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING     = "ping"
	MESSAGE_TYPE_PONG     = "pong"
	MESSAGE_TYPE_SNAPSHOT = "snapshot"
	MESSAGE_TYPE_EVENT    = "event"
	MESSAGE_TYPE_ERROR    = "error"
	PING_INTERVAL         = 30 * time.Second
	PONG_TIMEOUT          = 60 * time.Second
	WRITE_TIMEOUT         = 10 * time.Second
	MAX_MESSAGE_SIZE      = 64 * 1024
	SEND_CHANNEL_SIZE     = 64
	BROADCAST_BUFFER_SIZE = 256
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// SnapshotFunc describes the dashboard state a client receives on connect
// and whenever it asks for a resync.
type SnapshotFunc func() map[string]any

type Client struct {
	ID         string
	Connection *websocket.Conn
	Manager    *Manager
	send       chan Message
}

type Manager struct {
	hub      *Hub
	snapshot SnapshotFunc
	log      logger.Logger
	eventBus *events.EventBus
}

func New(eventBus *events.EventBus, snapshot SnapshotFunc) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub:      newHub(),
		snapshot: snapshot,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	for _, channel := range []events.Channel{events.JOBS_CHANNEL, events.NOTIFICATIONS_CHANNEL} {
		if err := manager.subscribe(channel); err != nil {
			_ = manager.Close()
			return nil, log.Err("failed to subscribe to channel", err, "channel", channel)
		}
	}

	return manager, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := &Client{
		ID:         uuid.New().String(),
		Connection: c,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	if m.snapshot != nil {
		client.send <- m.snapshotMessage()
	}

	select {
	case m.hub.register <- client:
	case <-m.hub.done:
		_ = c.Close()
		return
	}
	defer func() {
		select {
		case m.hub.unregister <- client:
		case <-m.hub.done:
		}
		if err := c.Close(); err != nil {
			log.Debug("Connection already closed", "clientID", client.ID, "error", err)
		}
	}()

	go client.readPump()
	client.writePump()
}

// Close stops the hub and disconnects every client. It is safe to call
// more than once.
func (m *Manager) Close() error {
	m.hub.closeOnce.Do(func() {
		close(m.hub.done)
	})
	<-m.hub.stopped
	return nil
}

func (m *Manager) ClientCount() int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()
	return len(m.hub.clients)
}

func (m *Manager) subscribe(channel events.Channel) error {
	return m.eventBus.Subscribe(channel, func(event events.Event) error {
		m.BroadcastMessage(Message{
			ID:        event.ID,
			Type:      MESSAGE_TYPE_EVENT,
			Channel:   channel.String(),
			Action:    string(event.Type),
			Data:      event.Data,
			Timestamp: event.Timestamp,
		})
		return nil
	})
}

func (m *Manager) BroadcastMessage(message Message) {
	select {
	case m.hub.broadcast <- message:
	default:
		m.log.Function("BroadcastMessage").Warn(
			"Broadcast channel is full, dropping message",
			"messageID", message.ID,
			"action", message.Action,
		)
	}
}

func (m *Manager) snapshotMessage() Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_SNAPSHOT,
		Channel:   events.JOBS_CHANNEL.String(),
		Data:      m.snapshot(),
		Timestamp: time.Now(),
	}
}

// enqueue delivers a reply to this client only while it is registered, so
// nothing is sent after the hub closed its channel.
func (c *Client) enqueue(message Message) {
	hub := c.Manager.hub
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	if _, ok := hub.clients[c.ID]; !ok {
		return
	}

	select {
	case c.send <- message:
	default:
		c.Manager.log.Function("enqueue").Warn("Client send channel full, dropping message", "clientID", c.ID)
	}
}

func (c *Client) routeMessage(message Message) {
	switch message.Type {
	case MESSAGE_TYPE_PING:
		c.enqueue(Message{ID: uuid.New().String(), Type: MESSAGE_TYPE_PONG, Timestamp: time.Now()})
	case MESSAGE_TYPE_SNAPSHOT:
		if c.Manager.snapshot != nil {
			c.enqueue(c.Manager.snapshotMessage())
		}
	default:
		c.Manager.log.Function("routeMessage").Warn("Unknown message type", "type", message.Type, "clientID", c.ID)
		c.enqueue(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_ERROR,
			Data:      map[string]any{"reason": "unknown message type"},
			Timestamp: time.Now(),
		})
	}
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			return
		}

		c.routeMessage(message)
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
