package middleware

import (
	"context"
	"sync"
	"time"
)

type clientInfo struct {
	start time.Time
	count int64
}

// MemoryCounter is a fixed-window counter kept in process memory. It is used
// when Redis is not configured, or for a single instance.
type MemoryCounter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

// NewMemoryCounter creates an empty in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{clients: make(map[string]*clientInfo), now: time.Now}
}

// Incr counts a hit on key and returns the count in the current window.
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	ci, ok := m.clients[key]
	if !ok || now.Sub(ci.start) >= window {
		m.clients[key] = &clientInfo{start: now, count: 1}
		m.sweepLocked(now, window)
		return 1, nil
	}
	ci.count++
	return ci.count, nil
}

// sweepLocked drops windows that closed long ago so the map stays bounded.
func (m *MemoryCounter) sweepLocked(now time.Time, window time.Duration) {
	if len(m.clients) < 4096 {
		return
	}
	for k, ci := range m.clients {
		if now.Sub(ci.start) >= 2*window {
			delete(m.clients, k)
		}
	}
}
