package session

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = time.Minute

// MemoryStore keeps sessions in process memory. Used when no redis URL is
// configured and in tests. Expired entries are dropped on read and swept
// from Save at most once per sweepEvery.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]Session
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]Session{}, now: time.Now}
}

// Len reports how many sessions are held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !m.now().Before(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}

	s.Flashes = append([]Flash(nil), s.Flashes...)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= sweepEvery {
		for id, held := range m.sessions {
			if !now.Before(held.ExpiresAt) {
				delete(m.sessions, id)
			}
		}
		m.lastSweep = now
	}

	cp := *s
	cp.Flashes = append([]Flash(nil), s.Flashes...)
	m.sessions[s.ID] = cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
