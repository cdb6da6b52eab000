package session

import (
	"context"
	"sync"
	"time"

	"guardian/internal/kba"
	id "guardian/pkg/domain"
	"guardian/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in a process-local map. Suitable for
// single-instance deployments and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionToken]kba.Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[id.SessionToken]kba.Session)}
}

func (s *InMemoryStore) Save(_ context.Context, sess *kba.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, token id.SessionToken) (*kba.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[token]; ok {
		copied := sess
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, token id.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live sessions. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
