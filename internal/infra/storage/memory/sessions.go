package memory

import (
	"context"
	"sync"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/auth"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]auth.Session)}
}

func (s *SessionStore) ByToken(ctx context.Context, token string) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	out := sess
	return &out, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ auth.SessionStore = (*SessionStore)(nil)
