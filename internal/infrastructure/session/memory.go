package session

import (
	"context"
	"sync"
	"time"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// MemoryStore is a process-local SessionStore. Sessions do not survive a
// restart, which is acceptable for tests and development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || sess.Token == "" {
		return nil, domain.ErrNoSession
	}
	if sess.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrNoSession
	}
	out := sess
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
