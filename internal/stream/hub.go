package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rzzdr/options-risk-engine/pkg/metrics"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Envelope wraps a broadcast payload with its message type
type Envelope struct {
	Type        string                          `json:"type"`
	PortfolioID string                          `json:"portfolio_id,omitempty"`
	Data        *models.PortfolioGreeksSnapshot `json:"data,omitempty"`
}

// Hub maintains the set of connected clients and fans portfolio Greeks
// snapshots out to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	nextID     atomic.Uint64
	recorder   *metrics.Recorder
	log        *logger.Logger
}

// Client is a middleman between one websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// NewHub creates a new hub. The recorder may be nil, in which case no
// client-count gauge is maintained.
func NewHub(recorder *metrics.Recorder) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		recorder:   recorder,
		log:        logger.GetLogger("stream.hub"),
	}
}

// Run owns the client set until the context is canceled
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("Starting greeks stream hub")

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Greeks stream hub shutting down")
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.recordClients()
			return

		case client := <-h.register:
			h.clients[client] = true
			h.recordClients()
			h.log.Infof("Client %s connected", client.id)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.recordClients()
				h.log.Infof("Client %s disconnected", client.id)
			}

		case message := <-h.broadcast:
			dropped := false
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
					dropped = true
				}
			}
			if dropped {
				h.recordClients()
			}
		}
	}
}

// addClient hands a client to the hub, reporting false if the hub has
// already shut down
func (h *Hub) addClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// removeClient detaches a client without blocking once the hub is gone
func (h *Hub) removeClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) recordClients() {
	if h.recorder != nil {
		h.recorder.RecordStreamClients(len(h.clients))
	}
}

// BroadcastSnapshot publishes a portfolio Greeks snapshot to every client
func (h *Hub) BroadcastSnapshot(snapshot *models.PortfolioGreeksSnapshot) error {
	payload, err := json.Marshal(Envelope{
		Type:        "portfolio_greeks",
		PortfolioID: snapshot.PortfolioID,
		Data:        snapshot,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	select {
	case h.broadcast <- payload:
		return nil
	default:
		h.log.Warn("Broadcast buffer full, dropping snapshot")
		return nil
	}
}

// HandleWebSocket upgrades an HTTP request and registers the client
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   fmt.Sprintf("client-%d", h.nextID.Add(1)),
	}

	if !h.addClient(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings and close frames are processed
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Errorf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
