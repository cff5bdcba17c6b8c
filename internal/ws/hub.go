package ws

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var activeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "ws_preview_connections",
	Help: "Open live preview sockets",
})

func init() {
	prometheus.MustRegister(activeConnections)
}

// Hub tracks open preview sockets so they can be closed on shutdown.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// register adds c; it returns false once the hub is closed.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	activeConnections.Inc()
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		activeConnections.Dec()
	}
}

// Count returns the number of open sockets.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CountSession returns the number of open sockets for one session.
func (h *Hub) CountSession(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if c.SessionID == sessionID {
			n++
		}
	}
	return n
}

// CloseAll closes every socket and refuses new ones.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
}
