package ports

import (
	"context"

	"github.com/vetlink/session-gateway/internal/core/domain"
)

// SessionService is the application-wide session context: the single
// authoritative answer to "who is logged in" for a given browser session,
// and the only component allowed to move a session between states (the
// backend client's 401 teardown excepted).
type SessionService interface {
	// Hydrate reconstructs the session from the store. Absence or a
	// malformed record yields Anonymous; a valid pair yields Authenticated
	// with the role normalized. A store transport failure leaves the
	// session Hydrating so guards can hold rendering.
	Hydrate(ctx context.Context, sessionID string) *domain.Session

	// Login authenticates against the backend. The response must include
	// both a user and a token; a missing token fails the operation and the
	// prior session state is preserved.
	Login(ctx context.Context, s *domain.Session, email, password string) (*domain.User, error)

	// Register creates an account and logs it in, with the same response
	// contract as Login.
	Register(ctx context.Context, s *domain.Session, input RegisterInput) (*domain.User, error)

	// Logout is purely local: it clears the store and resets the session.
	// The backend is not notified and the token is not revoked upstream.
	Logout(ctx context.Context, s *domain.Session) error

	// Refresh re-fetches the current user from the backend and replaces the
	// whole (user, token) pair, keeping the same token.
	Refresh(ctx context.Context, s *domain.Session) (*domain.User, error)
}
