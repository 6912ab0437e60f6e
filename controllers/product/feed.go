package productcontroller

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/metrics"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

const (
	feedWriteWait  = 10 * time.Second
	feedSendBuffer = 16
)

// FeedHub pushes catalog events to connected websocket clients. It implements
// services.Publisher. Slow clients whose buffer fills up are disconnected.
type FeedHub struct {
	mu       sync.Mutex
	clients  map[*feedClient]struct{}
	upgrader websocket.Upgrader
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewFeedHub accepts websocket upgrades from allowedOrigins. "*" or an empty
// list allows any origin.
func NewFeedHub(allowedOrigins []string) *FeedHub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &FeedHub{
		clients: make(map[*feedClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (h *FeedHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *FeedHub) Publish(event services.CatalogEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logging.Error().Err(err).Str("type", event.Type).Msg("failed to encode catalog event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}
}

// Close disconnects every client.
func (h *FeedHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.removeLocked(client)
	}
}

// GET /api/products/ws
func (h *FeedHub) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
		h.add(client)
		go client.writeLoop()

		// Clients only listen; reading detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.remove(client)
	}
}

func (h *FeedHub) add(client *feedClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	metrics.CatalogFeedClients.Set(float64(len(h.clients)))
}

func (h *FeedHub) remove(client *feedClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *FeedHub) removeLocked(client *feedClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	metrics.CatalogFeedClients.Set(float64(len(h.clients)))
}

// writeLoop owns all writes to the connection and closes it when send is closed.
func (c *feedClient) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
