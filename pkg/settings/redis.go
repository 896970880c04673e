package settings

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type hashClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// RedisStore keeps the record in a Redis hash.
type RedisStore struct {
	client hashClient
	key    string
}

// NewRedisStore creates a store over a Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, key: OptionName}
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context) (map[string]string, error) {
	rec, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}
	return rec, nil
}

// Save implements Store.
func (r *RedisStore) Save(ctx context.Context, s Settings) error {
	values := []any{
		KeyAPIKey, s.APIKey,
		KeyFromEmail, s.FromEmail,
		KeyFromName, s.FromName,
	}
	if err := r.client.HSet(ctx, r.key, values...).Err(); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}
