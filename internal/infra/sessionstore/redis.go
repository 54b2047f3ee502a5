package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"flea-market/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisCartStore keeps each session's cart item list in a Redis slot with a
// TTL. The cart is session state: losing it on expiry has no data-loss
// consequence because nothing durable ever depended on it.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) ([]uuid.UUID, bool, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, infra.WrapRepoErr("failed to read cart slot", err)
	}

	var items []uuid.UUID
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, infra.WrapRepoErr("corrupt cart slot", err)
	}
	return items, true, nil
}

func (s *RedisCartStore) Set(ctx context.Context, sessionID string, items []uuid.UUID) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart slot", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to write cart slot", err)
	}
	return nil
}

func (s *RedisCartStore) Remove(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return infra.WrapRepoErr("failed to remove cart slot", err)
	}
	return nil
}
