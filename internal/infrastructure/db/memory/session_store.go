// Package memory provides an in-memory session store with the same contract
// as the Redis implementation. It backs tests and Redis-less development.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

type record struct {
	rawUser string
	token   string
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]record
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]record)}
}

func (s *SessionStore) Load(_ context.Context, sessionID string) (*ports.StoredSession, error) {
	s.mu.RLock()
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || rec.rawUser == "" || rec.token == "" {
		return nil, domain.ErrNoStoredSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rec.rawUser), &user); err != nil {
		// Same behaviour as the Redis store: a malformed user record is
		// discarded and reported as absence.
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, domain.ErrNoStoredSession
	}

	return &ports.StoredSession{User: user, Token: rec.token}, nil
}

func (s *SessionStore) Save(_ context.Context, sessionID string, user domain.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sessionID] = record{rawUser: string(rawUser), token: token}
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// SaveRaw stores an arbitrary serialized user, bypassing marshalling. Tests
// use it to plant malformed records.
func (s *SessionStore) SaveRaw(sessionID, rawUser, token string) {
	s.mu.Lock()
	s.sessions[sessionID] = record{rawUser: rawUser, token: token}
	s.mu.Unlock()
}
