// Package session provides the durable key-value stores behind the portal's
// session layer. The Redis store is the production implementation; the memory
// store backs tests and single-node development.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

const keyPrefix = "session:"

// RedisStore persists sessions as JSON values with a TTL matching the
// session's own expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client. ttl bounds how long a record
// outlives its last Save.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads a session by ID. A missing or undecodable record settles to
// domain.ErrNoSession; a corrupt record is additionally deleted so it cannot
// keep resurfacing.
func (s *RedisStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		_ = s.client.Del(ctx, keyPrefix+id).Err()
		return nil, domain.ErrNoSession
	}
	if sess.ID == "" || sess.Token == "" {
		_ = s.client.Del(ctx, keyPrefix+id).Err()
		return nil, domain.ErrNoSession
	}
	return &sess, nil
}

// Delete removes a session. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
