package ws

import (
	"context"
	"sync"

	"gallery_backend/internal/logger"
)

// Manager tracks live WebSocket clients. Each client carries its own
// notifier subscription; the manager owns registration and shutdown.
type Manager struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is done, then drops every client.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("WebSocket client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				client.cancel()
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("WebSocket client unregistered", "user_id", client.UserID, "total", total)

		case <-ctx.Done():
			m.mu.Lock()
			for client := range m.clients {
				client.cancel()
				delete(m.clients, client)
			}
			m.mu.Unlock()
			logger.Info("WebSocket manager stopped")
			return
		}
	}
}

func (m *Manager) add(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) remove(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

func (m *Manager) GetClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) IsUserConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for client := range m.clients {
		if client.UserID == userID {
			return true
		}
	}
	return false
}
