package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps profiles in a Redis hash per user, for deployments that
// run more than one bot instance behind the same token. No TTL is set,
// matching the no-expiry contract of the in-memory backend.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore parses a redis:// URL and verifies connectivity.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, prefix: "session:"}, nil
}

func (s *RedisStore) key(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (Profile, bool, error) {
	vals, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return Profile{}, false, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(vals) == 0 {
		return Profile{}, false, nil
	}
	return Profile{
		Name:          vals["name"],
		Authenticated: vals["authenticated"] == "1",
	}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID int64, p Profile) error {
	auth := "0"
	if p.Authenticated {
		auth = "1"
	}
	if err := s.client.HSet(ctx, s.key(userID), "name", p.Name, "authenticated", auth).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
