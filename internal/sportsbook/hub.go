package sportsbook

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Client is one subscriber connected to the round-lifecycle WS feed.
type Client struct {
	conn   *websocket.Conn
	userID string
	mu     sync.Mutex
}

// Hub fans round-lifecycle events (round_seeded, round_settled, bet_placed,
// bet_claimed, round_finalised) out to every connected client. Adapted from
// the teacher's crash-game broadcast hub: the register/unregister/broadcast
// channel shape survives unchanged, only the event payloads differ.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan interface{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan interface{}, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("[WS] client connected", zap.String("user_id", client.userID), zap.Int("total", len(h.clients)))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.conn.Close()
				h.logger.Info("[WS] client disconnected", zap.String("user_id", client.userID), zap.Int("total", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			jsonMessage, ok := message.([]byte)
			if !ok {
				var err error
				jsonMessage, err = json.Marshal(message)
				if err != nil {
					h.logger.Error("[WS] marshal error", zap.Error(err))
					continue
				}
			}

			h.mu.RLock()
			for client := range h.clients {
				go client.send(jsonMessage)
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Broadcast(message interface{}) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("[WS] broadcast channel full, dropping message")
	}
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *Client) send(message interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var data []byte
	var err error

	switch v := message.(type) {
	case []byte:
		data = v
	default:
		data, err = json.Marshal(v)
		if err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	c.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) RegisterClient(conn *websocket.Conn, userID string) {
	client := &Client{conn: conn, userID: userID}
	h.register <- client
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mu.RLock()
	for client := range h.clients {
		if client.conn == conn {
			h.mu.RUnlock()
			h.unregister <- client
			return
		}
	}
	h.mu.RUnlock()
}

// RoundEvent is the envelope broadcast for every round-lifecycle transition.
type RoundEvent struct {
	Type    string      `json:"type"`
	RoundID uint64      `json:"round_id"`
	Data    interface{} `json:"data,omitempty"`
}
