package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:revoked:"

// Revoker remembers logged-out token ids until their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisRevoker stores revoked token ids in Redis with a TTL matching the token.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker parses url and verifies the connection.
func NewRedisRevoker(url string) (*RedisRevoker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRevoker{client: client}, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRevoker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

// NoopRevoker is used when no Redis is configured. Logged-out tokens stay
// valid until they expire.
type NoopRevoker struct{}

func NewNoopRevoker() *NoopRevoker { return &NoopRevoker{} }

func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (NoopRevoker) Ping(context.Context) error { return nil }

func (NoopRevoker) Close() error { return nil }
