package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/view"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Outgoing messages buffered per client before new ones are dropped
	sendBuffer = 8
)

// changeMessage is pushed to browsers when the document changes
type changeMessage struct {
	Type     string `json:"type"`
	Revision uint64 `json:"revision"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans document changes out to connected browser tabs
type Hub struct {
	doc      *view.Document
	updates  <-chan struct{}
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewHub creates a hub for doc. Changes made before Run starts are
// delivered once it does.
func NewHub(doc *view.Document) *Hub {
	return &Hub{
		doc:     doc,
		updates: doc.Subscribe(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Run forwards document changes until ctx is done, then disconnects all
// clients. A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer h.doc.Unsubscribe(h.updates)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-h.updates:
			h.broadcast(changeMessage{Type: "changed", Revision: h.doc.Snapshot().Revision})
		}
	}
}

// Clients returns the number of connected tabs
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		logging.Debug("WebSocket upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
	hello, _ := json.Marshal(changeMessage{Type: "hello", Revision: h.doc.Snapshot().Revision})
	h.register(c, hello)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *wsClient, hello []byte) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.send <- hello
	n := len(h.clients)
	h.mu.Unlock()

	websocketClients.Inc()
	logging.Debug("WebSocket client connected", zap.String("remote_addr", c.conn.RemoteAddr().String()), zap.Int("clients", n))
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		websocketClients.Dec()
		logging.Debug("WebSocket client disconnected", zap.String("remote_addr", c.conn.RemoteAddr().String()))
	}
}

func (h *Hub) broadcast(msg changeMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logging.Error("Failed to encode change message", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow tab; it reloads on the next message it does get
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		h.unregister(c)
	}
}

// readPump discards incoming messages and detects disconnects
func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings
func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
