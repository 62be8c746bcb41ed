package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/chotalink/chotalink/internal/link"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists the collection as one JSON value in Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store under CollectionKey.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    CollectionKey,
	}
}

func (r *RedisStore) Load(ctx context.Context) ([]link.ShortLink, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []link.ShortLink{}, nil
		}

		return nil, err
	}

	var links []link.ShortLink
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		// Corrupt content is recovered by starting empty.
		return []link.ShortLink{}, nil
	}

	return links, nil
}

func (r *RedisStore) Save(ctx context.Context, links []link.ShortLink) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key, raw, 0).Err()
}
