package state

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps sessions in process memory. It hands out deep copies so
// two loads of the same id never alias each other.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConversationSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*ConversationSession),
	}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*ConversationSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *ConversationSession) error {
	if s == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(s.ID) == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}
