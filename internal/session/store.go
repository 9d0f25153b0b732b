package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists sessions.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer
// than the TTL are dropped. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a store. A ttl of zero keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the session with id.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || m.expired(s) {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Save stores a copy of s and stamps UpdatedAt. Expired sessions are swept.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	stored := s.Clone()
	stored.UpdatedAt = m.now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	s.UpdatedAt = stored.UpdatedAt

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.sessions {
		if m.expired(existing) {
			delete(m.sessions, id)
		}
	}
	m.sessions[s.ID] = stored
	return nil
}

// Delete removes the session with id. Missing sessions are not an error.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}
