package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

const (
	keyPrefix  = "vetlink:session:"
	fieldUser  = "vetlink_user"
	fieldToken = "vetlink_token"
)

// SessionStore persists the (user, token) pair as a Redis hash with exactly
// two fields. A single HSET writes both halves and a single DEL removes them,
// so a concurrent Load never observes one half without the other.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration // 0 means no expiry
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// When ttl is positive, the record expires that long after the last Save.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (*ports.StoredSession, error) {
	vals, err := s.client.HMGet(ctx, s.key(sessionID), fieldUser, fieldToken).Result()
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	rawUser, _ := vals[0].(string)
	token, _ := vals[1].(string)
	if rawUser == "" || token == "" {
		// Empty or half-written record: report absence, discard leftovers.
		s.discard(ctx, sessionID)
		return nil, domain.ErrNoStoredSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		// Malformed stored user is treated as absence, never an error.
		s.discard(ctx, sessionID)
		return nil, domain.ErrNoStoredSession
	}

	return &ports.StoredSession{User: user, Token: token}, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, user domain.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldUser, string(rawUser), fieldToken, token)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

// discard removes an unreadable record so the next Load starts clean. Errors
// are ignored: the caller already reports absence.
func (s *SessionStore) discard(ctx context.Context, sessionID string) {
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
}
