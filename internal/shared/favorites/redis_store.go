package favorites

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists favorites in a Redis set, shared across instances
// and surviving restarts.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisStoreOption configures the Redis store.
type RedisStoreOption func(*RedisStore)

// WithRedisKey overrides the set key.
func WithRedisKey(key string) RedisStoreOption {
	return func(s *RedisStore) {
		s.key = key
	}
}

// NewRedisStore creates a Redis-backed favorites store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    "favorites:characters",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) Add(ctx context.Context, characterID int) error {
	if s == nil || s.client == nil {
		return errors.New("favorites: redis store is not initialized")
	}
	return s.client.SAdd(ctx, s.key, characterID).Err()
}

func (s *RedisStore) Remove(ctx context.Context, characterID int) error {
	if s == nil || s.client == nil {
		return errors.New("favorites: redis store is not initialized")
	}
	return s.client.SRem(ctx, s.key, characterID).Err()
}

func (s *RedisStore) Contains(ctx context.Context, characterID int) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("favorites: redis store is not initialized")
	}
	return s.client.SIsMember(ctx, s.key, characterID).Result()
}

func (s *RedisStore) List(ctx context.Context) ([]int, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("favorites: redis store is not initialized")
	}

	members, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			// Skip foreign entries instead of failing the whole listing.
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	if s == nil || s.client == nil {
		return 0, errors.New("favorites: redis store is not initialized")
	}

	count, err := s.client.SCard(ctx, s.key).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
