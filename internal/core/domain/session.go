package domain

import (
	"context"
	"errors"
)

// SessionState is the lifecycle state of a browser session.
type SessionState string

const (
	// SessionHydrating means the durable store has not been consulted yet
	// (or could not be reached); nothing may be rendered behind a guard.
	SessionHydrating SessionState = "hydrating"
	// SessionAnonymous means no user is logged in.
	SessionAnonymous SessionState = "anonymous"
	// SessionAuthenticated means a (user, token) pair is present.
	SessionAuthenticated SessionState = "authenticated"
)

var (
	ErrNoStoredSession = errors.New("no stored session")
	ErrSessionExpired  = errors.New("session expired")
)

// Session is the in-memory representation of one browser session for the
// duration of a request. It is reconstructed from the session store on every
// request and is the single authoritative answer to "who is logged in".
type Session struct {
	ID    string
	State SessionState
	User  *User
	Token string
}

// NewSession returns a session in the Hydrating state.
func NewSession(id string) *Session {
	return &Session{ID: id, State: SessionHydrating}
}

// Authenticate replaces the whole (user, token) pair and moves the session to
// Authenticated. There is no partial mutation path: an already-authenticated
// session passes through a full replace.
func (s *Session) Authenticate(user User, token string) {
	u := user.Normalized()
	s.User = &u
	s.Token = token
	s.State = SessionAuthenticated
}

// Reset drops the user and token and moves the session to Anonymous.
func (s *Session) Reset() {
	s.User = nil
	s.Token = ""
	s.State = SessionAnonymous
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}

// Hydrating reports whether the durable store has not been consulted yet.
func (s *Session) Hydrating() bool {
	return s.State == SessionHydrating
}

type sessionCtxKey struct{}

// WithSession attaches the session to a request context so that the backend
// client can pick up the bearer token without every call site threading it.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session attached by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
