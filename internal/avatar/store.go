package avatar

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fitreel/feedcore/pkg/config"
	"github.com/fitreel/feedcore/pkg/logging"
)

// ErrStoreDisabled is returned when store operations are attempted but
// the Redis store is disabled
var ErrStoreDisabled = fmt.Errorf("avatar store is disabled")

// Store is an optional Redis-backed avatar store shared across feed
// sessions. A nil *Store is valid and behaves as disabled.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis avatar store
func NewStore(cfg *config.RedisConfig, ttl time.Duration) (*Store, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis avatar store disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Store{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get retrieves a cached avatar data string by workout ID
func (s *Store) Get(ctx context.Context, workoutID string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrStoreDisabled
	}
	return s.client.Get(ctx, namespaceKey(workoutID)).Result()
}

// Set stores an avatar data string keyed by workout ID
func (s *Store) Set(ctx context.Context, workoutID, data string) error {
	if s == nil || s.client == nil {
		return ErrStoreDisabled
	}
	return s.client.Set(ctx, namespaceKey(workoutID), data, s.ttl).Err()
}

// Close closes the Redis connection
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Health checks Redis health
func (s *Store) Health(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrStoreDisabled
	}
	return s.client.Ping(ctx).Err()
}

func namespaceKey(workoutID string) string {
	return "feedcore:avatar:" + workoutID
}
