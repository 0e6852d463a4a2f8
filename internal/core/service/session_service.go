package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

// SessionService implements ports.SessionService on top of the session store
// and the backend auth endpoints. It is the only component that moves a
// session between states; the backend client's 401 teardown is the single
// sanctioned exception.
type SessionService struct {
	store  ports.SessionStore
	auth   ports.AuthAPI
	logger zerolog.Logger
}

func NewSessionService(store ports.SessionStore, auth ports.AuthAPI, logger zerolog.Logger) *SessionService {
	return &SessionService{store: store, auth: auth, logger: logger}
}

// Hydrate reconstructs the session from the durable store. A missing or
// malformed record yields Anonymous; a readable pair yields Authenticated
// with the role normalized. If the store itself is unreachable the session
// stays Hydrating so the route guard holds rendering instead of flashing the
// anonymous view.
func (s *SessionService) Hydrate(ctx context.Context, sessionID string) *domain.Session {
	sess := domain.NewSession(sessionID)

	stored, err := s.store.Load(ctx, sessionID)
	switch {
	case err == nil:
		sess.Authenticate(stored.User, stored.Token)
	case errors.Is(err, domain.ErrNoStoredSession):
		sess.Reset()
	default:
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("session store unavailable, holding hydration")
	}
	return sess
}

func (s *SessionService) Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.User, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.adopt(ctx, sess, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return user, nil
}

func (s *SessionService) Register(ctx context.Context, sess *domain.Session, input ports.RegisterInput) (*domain.User, error) {
	res, err := s.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	user, err := s.adopt(ctx, sess, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("registered")
	return user, nil
}

// Logout is purely local: the backend is not called and the token is not
// revoked upstream. The in-memory session is reset even if the store clear
// fails, so the caller never keeps serving an authenticated view.
func (s *SessionService) Logout(ctx context.Context, sess *domain.Session) error {
	err := s.store.Clear(ctx, sess.ID)
	sess.Reset()
	if err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sess.ID).Msg("logout")
	return nil
}

// Refresh replaces the whole (user, token) pair with a fresh copy of the
// user from the backend, keeping the current token.
func (s *SessionService) Refresh(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}

	return s.adopt(ctx, sess, &ports.AuthResult{User: *user, Token: sess.Token})
}

// adopt persists and exposes a (user, token) pair. A response without a token
// is a hard error: neither the store nor the in-memory session is touched,
// so prior state is preserved.
func (s *SessionService) adopt(ctx context.Context, sess *domain.Session, res *ports.AuthResult) (*domain.User, error) {
	if res == nil || res.Token == "" {
		return nil, domain.ErrMissingToken
	}

	user := res.User.Normalized()
	if err := s.store.Save(ctx, sess.ID, user, res.Token); err != nil {
		return nil, err
	}

	sess.Authenticate(user, res.Token)
	return sess.User, nil
}
