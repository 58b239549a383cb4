package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedSessionStore puts a short-TTL Redis cache in front of a SessionStore
// so the gate does not hit Postgres on every authenticated request. Writes go
// through to the inner store first and then drop the cached entry, so a new
// login or a logout is never masked longer than the TTL even when the
// invalidation itself fails. Keep the TTL well under the credential lifetime.
type CachedSessionStore struct {
	inner  SessionStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSessionStore wraps inner with a Redis cache. A nil client or
// non-positive TTL disables caching entirely.
func NewCachedSessionStore(inner SessionStore, client *redis.Client, ttl time.Duration) *CachedSessionStore {
	return &CachedSessionStore{inner: inner, client: client, ttl: ttl}
}

func (s *CachedSessionStore) GetSessionToken(ctx context.Context, subjectID int64) (string, error) {
	if !s.enabled() {
		return s.inner.GetSessionToken(ctx, subjectID)
	}

	key := sessionKey(subjectID)
	if cached, err := s.client.Get(ctx, key).Result(); err == nil {
		return cached, nil
	}

	token, err := s.inner.GetSessionToken(ctx, subjectID)
	if err != nil {
		return "", err
	}
	// Empty tokens are cached too: a logged-out subject generates the same
	// lookup traffic as an active one.
	if err := s.client.Set(ctx, key, token, s.ttl).Err(); err != nil && err != redis.Nil {
		return token, nil
	}
	return token, nil
}

func (s *CachedSessionStore) SetSession(ctx context.Context, subjectID int64, token string, loginAt time.Time) error {
	if err := s.inner.SetSession(ctx, subjectID, token, loginAt); err != nil {
		return err
	}
	s.invalidate(ctx, subjectID)
	return nil
}

func (s *CachedSessionStore) ClearSession(ctx context.Context, subjectID int64) error {
	if err := s.inner.ClearSession(ctx, subjectID); err != nil {
		return err
	}
	s.invalidate(ctx, subjectID)
	return nil
}

func (s *CachedSessionStore) enabled() bool {
	return s.client != nil && s.ttl > 0
}

func (s *CachedSessionStore) invalidate(ctx context.Context, subjectID int64) {
	if !s.enabled() {
		return
	}
	// Best effort; an orphaned entry expires with the TTL.
	_ = s.client.Del(ctx, sessionKey(subjectID)).Err()
}

func sessionKey(subjectID int64) string {
	return fmt.Sprintf("session:token:%d", subjectID)
}
