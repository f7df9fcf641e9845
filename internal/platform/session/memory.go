package session

import (
	"context"
	"sync"
	"time"

	"friendbook/internal/domain/model"
)

// MemoryStore is a thread-safe in-memory Store. Sessions are lost on
// restart. Expiry is lazy: expired entries are dropped on access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

func (s *MemoryStore) Create(ctx context.Context, id string, sess model.Session) error {
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (model.Session, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return model.Session{}, false, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return model.Session{}, false, nil
	}
	return sess, true, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
