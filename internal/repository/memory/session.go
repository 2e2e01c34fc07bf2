package memory

import (
	"context"
	"sync"

	"society-ledger/internal/domain/session"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session.Session)}
}

func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
