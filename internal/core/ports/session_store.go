package ports

import (
	"context"

	"github.com/vetlink/session-gateway/internal/core/domain"
)

// StoredSession is the durable half of a session: the (user, token) pair kept
// under two fixed fields. The two halves are always written and cleared
// together; the in-memory session is fully reconstructable from this pair.
type StoredSession struct {
	User  domain.User
	Token string
}

// SessionStore is the persisted session record behind the session service.
// It is owned by the session service; the one sanctioned outside writer is
// the backend client's 401 teardown, at which point the stored session is
// provably invalid.
type SessionStore interface {
	// Load returns the stored pair for a session id. Absence is reported as
	// domain.ErrNoStoredSession; a malformed stored user counts as absence
	// and is discarded. Only transport failures surface as other errors.
	Load(ctx context.Context, sessionID string) (*StoredSession, error)
	// Save overwrites both fields together; a concurrent Load never observes
	// a token without a user or vice versa.
	Save(ctx context.Context, sessionID string, user domain.User, token string) error
	// Clear removes both fields. Clearing an empty store is a no-op.
	Clear(ctx context.Context, sessionID string) error
}
