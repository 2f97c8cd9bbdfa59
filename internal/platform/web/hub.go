// Package web serves live 2048 snapshots to spectators over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512

	sendBuffer      = 64
	broadcastBuffer = 256
)

// EventSnapshot is the event name of snapshot messages.
const EventSnapshot = "snapshot"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Read-only feed; any page may watch
		return true
	},
}

// Message is the JSON envelope sent to spectators.
type Message struct {
	Event    string          `json:"event"`
	Snapshot *t2048.Snapshot `json:"snapshot,omitempty"`
}

// Client is one connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the set of spectators and fans snapshots out to them. It
// implements t2048.Renderer, so it can be attached to a session directly.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *log.Logger

	mu     sync.RWMutex
	latest []byte
	snap   *t2048.Snapshot

	count atomic.Int32
}

// NewHub creates a hub. Call Run to start its event loop. logger may be nil.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default().WithPrefix("web")
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.broadcast:
			h.broadcastMessage(data)
		}
	}
}

// Actuate records snap as the latest state and queues it for every client.
// It never blocks the game: if the broadcast queue is full the frame is
// dropped, though late joiners still get the latest snapshot.
func (h *Hub) Actuate(snap t2048.Snapshot) {
	data, err := json.Marshal(Message{Event: EventSnapshot, Snapshot: &snap})
	if err != nil {
		h.logger.Error("encode snapshot", "error", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	h.snap = &snap
	h.mu.Unlock()

	select {
	case h.broadcast <- data:
	default:
		h.logger.Debug("broadcast queue full, frame dropped", "turn", snap.Turn)
	}
}

// Latest returns the most recent snapshot, if any.
func (h *Hub) Latest() (t2048.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return t2048.Snapshot{}, false
	}
	return *h.snap, true
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// ServeWS upgrades the request and registers the connection as a spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// registerClient adds a client and primes it with the latest snapshot.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.count.Add(1)

	h.mu.RLock()
	latest := h.latest
	h.mu.RUnlock()
	if latest != nil {
		client.send <- latest
	}

	h.logger.Info("spectator joined", "clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Add(-1)

	h.logger.Info("spectator left", "clients", len(h.clients))
}

// broadcastMessage sends data to every client, dropping those that can't
// keep up.
func (h *Hub) broadcastMessage(data []byte) {
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("dropping slow spectator")
			h.unregisterClient(client)
		}
	}
}

// readPump discards client frames, keeping the read deadline fresh on pong.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // Fails only on a closed conn
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read", "error", err)
			}
			return
		}
	}
}

// writePump writes queued messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Fails only on a closed conn
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck // Closing anyway
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Fails only on a closed conn
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
