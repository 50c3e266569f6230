package auth

import (
	"context"
	"sync"

	"github.com/karanvs/stockbook/internal/domain/models"
)

// MemorySessionStore keeps sessions in process memory. Used when no MongoDB
// is configured; sessions do not survive a restart.
type MemorySessionStore struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.Session),
	}
}

// SaveSession stores or replaces a session.
func (m *MemorySessionStore) SaveSession(_ context.Context, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return nil
}

// FindSession retrieves a session by token.
func (m *MemorySessionStore) FindSession(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, exists := m.sessions[token]; exists {
		return &session, nil
	}
	return nil, nil
}

// DeleteSession removes a session by token.
func (m *MemorySessionStore) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// SetSessionScreen updates the active screen of a stored session.
func (m *MemorySessionStore) SetSessionScreen(_ context.Context, token, screen string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[token]
	if !exists {
		return nil
	}
	session.ActiveScreen = screen
	m.sessions[token] = session
	return nil
}
