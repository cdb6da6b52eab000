package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"guardian/internal/kba"
	id "guardian/pkg/domain"
	"guardian/pkg/platform/sentinel"
)

// Redis key prefix for quiz sessions.
const sessionKeyPrefix = "kba:session:"

// RedisStore backs sessions with Redis so multiple instances share one
// session table. Expiry rides on Redis key TTL: the key vanishes at
// ExpiresAt, which is why DeleteExpired reports 0 here.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sess *kba.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return sentinel.ErrExpired
	}
	key := sessionKeyPrefix + sess.Token.String()
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, token id.SessionToken) (*kba.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	var sess kba.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token id.SessionToken) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token.String()).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteExpired(_ context.Context, _ time.Time) (int, error) {
	// Redis evicts via key TTL; nothing to sweep.
	return 0, nil
}
