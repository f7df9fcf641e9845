package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"friendbook/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a native TTL, so expiry is
// enforced by the backend and sessions survive an API restart.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Create(ctx context.Context, id string, sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (model.Session, bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, fmt.Errorf("failed to fetch session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Session{}, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	// The TTL should have evicted it already, but clock skew between the
	// API and Redis can leave a stale entry readable.
	if time.Now().After(sess.ExpiresAt) {
		return model.Session{}, false, nil
	}
	return sess, true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
