package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is a single WebSocket connection for an authenticated user.
// A user may hold several connections at once (multiple tabs).
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue queues a payload for the write pump. Returns false when the
// buffer is full or the client is closed. Sends and the close are
// serialized on the client's lock, so a broadcast can never race a
// teardown into a send on a closed channel.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// closeSend shuts the send channel exactly once. Only the manager's
// unregister path calls this.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Manager tracks active connections and conversation subscriptions.
type Manager struct {
	clients    map[*Client]bool
	byUser     map[string]map[*Client]bool
	rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	conversationRepo repository.ConversationRepository
}

func NewManager(conversationRepo repository.ConversationRepository) *Manager {
	return &Manager{
		clients:          make(map[*Client]bool),
		byUser:           make(map[string]map[*Client]bool),
		rooms:            make(map[string]map[*Client]bool),
		Register:         make(chan *Client),
		Unregister:       make(chan *Client),
		conversationRepo: conversationRepo,
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				if m.byUser[client.UserID] == nil {
					m.byUser[client.UserID] = make(map[*Client]bool)
				}
				m.byUser[client.UserID][client] = true
				m.mutex.Unlock()
				logger.Debug("WebSocket client connected: %s", client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Debug("WebSocket client disconnected: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}
	delete(m.clients, client)
	client.closeSend()

	if conns := m.byUser[client.UserID]; conns != nil {
		delete(conns, client)
		if len(conns) == 0 {
			delete(m.byUser, client.UserID)
		}
	}
	for conversationID, members := range m.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, conversationID)
		}
	}
}

func (m *Manager) subscribe(conversationID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[conversationID] == nil {
		m.rooms[conversationID] = make(map[*Client]bool)
	}
	m.rooms[conversationID][client] = true
}

func (m *Manager) unsubscribe(conversationID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members := m.rooms[conversationID]
	if members == nil {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, conversationID)
	}
}

// SendToUser delivers a payload to every open connection of a user.
func (m *Manager) SendToUser(userID string, payload []byte) {
	m.mutex.RLock()
	conns := make([]*Client, 0, len(m.byUser[userID]))
	for client := range m.byUser[userID] {
		conns = append(conns, client)
	}
	m.mutex.RUnlock()

	for _, client := range conns {
		m.deliver(client, payload)
	}
}

// BroadcastToConversation delivers a payload to every connection
// subscribed to the conversation, the sender's own included.
func (m *Manager) BroadcastToConversation(conversationID string, payload []byte) {
	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[conversationID]))
	for client := range m.rooms[conversationID] {
		members = append(members, client)
	}
	m.mutex.RUnlock()

	for _, client := range members {
		m.deliver(client, payload)
	}
}

// deliver drops the payload when the client cannot take it. Slow
// consumers lose frames, not their connection; teardown stays with the
// unregister path.
func (m *Manager) deliver(client *Client, payload []byte) {
	if !client.enqueue(payload) {
		logger.Info("WebSocket send buffer full, dropping frame for %s", client.UserID)
	}
}

// ReadPump reads frames from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		m.handleFrame(c, payload)
	}
}

// WritePump writes queued payloads and keepalive pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
