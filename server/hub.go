package server

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 3 * time.Second

// Hub tracks watcher connections and fans layouts out to them
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	write   func(ctx context.Context, conn *websocket.Conn, message []byte) error
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		write:   writeText,
	}
}

func writeText(ctx context.Context, conn *websocket.Conn, message []byte) error {
	return conn.Write(ctx, websocket.MessageText, message)
}

// Add registers a watcher
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

// Remove forgets a watcher
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Count returns the number of registered watchers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to every watcher. Writes run in parallel outside
// the lock, so a slow watcher delays the broadcast by at most one timeout and
// never blocks Add or Remove. Watchers that fail to accept the write in time
// are closed and dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			if err := h.write(ctx, conn, message); err != nil {
				h.Remove(conn)
				_ = conn.Close(websocket.StatusNormalClosure, "")
			}
		}()
	}
	wg.Wait()
}
