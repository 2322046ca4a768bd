package websockets

import (
	"sync"
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
}

func newHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, BROADCAST_BUFFER_SIZE),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)

		case <-h.done:
			m.closeAllClients()
			close(h.stopped)
			return
		}
	}
}

// closeAllClients ends every write pump; their connections close as the
// handlers return.
func (m *Manager) closeAllClients() {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	for clientID, client := range m.hub.clients {
		delete(m.hub.clients, clientID)
		close(client.send)
	}
	m.log.Function("closeAllClients").Info("Websocket hub stopped")
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client
	m.log.Function("registerClient").Info("Client connected", "clientID", client.ID, "clients", len(m.hub.clients))
}

// unregisterClient runs once per client even though both pumps report the
// disconnect.
func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}
	delete(m.hub.clients, client.ID)
	close(client.send)

	m.log.Function("unregisterClient").Info("Client disconnected", "clientID", client.ID, "clients", len(m.hub.clients))
}

// broadcastMessage drops the message for clients whose buffer is full; the
// next snapshot brings them back in sync.
func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sent := 0
	for clientID, client := range h.clients {
		select {
		case client.send <- message:
			sent++
		default:
			log.Warn("Client too slow, dropping message", "clientID", clientID, "messageID", message.ID)
		}
	}

	log.Debug("Broadcast complete", "messageID", message.ID, "sentTo", sent, "totalClients", len(h.clients))
}
