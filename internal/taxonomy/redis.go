package taxonomy

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the shared-deployment variant: one set per list key,
// so several planner instances grow the same autocomplete lists.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Entries(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *RedisStore) Contains(ctx context.Context, key, value string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, value).Result()
}

func (s *RedisStore) Append(ctx context.Context, key, value string) (bool, error) {
	added, err := s.rdb.SAdd(ctx, key, value).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}
