// Package notify pushes domain events to connected clients over
// WebSocket. The hub consumes the event broker's stream and fans each
// event out to the recipients that currently hold a connection; users
// without a connection simply miss the push, the database remains the
// source of truth.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/pkg/constants"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one user's WebSocket connection.
type Client struct {
	conn *websocket.Conn
	uuid string
	send chan []byte
}

// writeLoop drains the send channel into the connection.
func (c *Client) writeLoop() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error("ws write", zap.String("user", c.uuid), zap.Error(err))
			return
		}
	}
}

// readLoop discards inbound frames; it exists to detect the close.
func (c *Client) readLoop(hub *Hub) {
	defer hub.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub tracks connections by user uuid. A user has at most one
// connection; a new one replaces the old.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	broker  mq.EventBroker
}

// NewHub creates the hub on top of an event broker.
func NewHub(broker mq.EventBroker) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		broker:  broker,
	}
}

// Run consumes the broker's event stream until it is closed. Call in a
// goroutine from main.
func (h *Hub) Run() {
	for event := range h.broker.Events() {
		h.dispatch(event)
	}
}

// dispatch serializes the event once and pushes it to every connected
// recipient.
func (h *Hub) dispatch(event *mq.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("encode event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, uuid := range event.Recipients {
		client, ok := h.clients[uuid]
		if !ok {
			continue
		}
		select {
		case client.send <- payload:
		default:
			zap.L().Warn("client send buffer full, dropping push",
				zap.String("user", uuid), zap.String("type", string(event.Type)))
		}
	}
}

// Connect upgrades the request and registers the connection for the
// authenticated user.
func (h *Hub) Connect(c *gin.Context, userUuid string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade", zap.Error(err))
		return
	}
	client := &Client{
		conn: conn,
		uuid: userUuid,
		send: make(chan []byte, constants.CHANNEL_SIZE),
	}

	h.mu.Lock()
	if old, ok := h.clients[userUuid]; ok {
		old.conn.Close()
		close(old.send)
	}
	h.clients[userUuid] = client
	h.mu.Unlock()

	go client.writeLoop()
	go client.readLoop(h)
	zap.L().Info("ws connected", zap.String("user", userUuid))
}

// unregister drops a client if it is still the registered one.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[client.uuid]; ok && current == client {
		delete(h.clients, client.uuid)
		client.conn.Close()
		close(client.send)
		zap.L().Info("ws disconnected", zap.String("user", client.uuid))
	}
}
