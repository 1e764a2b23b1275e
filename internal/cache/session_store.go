package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists cart + checkout-session state between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*checkout.Session, error)
	Save(ctx context.Context, s *checkout.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON blobs in redis, keyed by the
// opaque session id the client holds. This is the durable storage that lets
// a cart survive page reloads.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return "checkout:session:" + sessionID
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*checkout.Session, error) {
	raw, err := r.rdb.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var s checkout.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *checkout.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key(s.ID), raw, r.ttl).Err()
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, key(sessionID)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
