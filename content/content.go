package content

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

const contentKey = "lms:richtext:content"

// KV is the key-value surface the store needs. go-redis clients satisfy it.
type KV interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Store keeps the scratch rich-text content in Redis under a single key. The
// content survives restarts and is shared across instances, unlike process
// state.
type Store struct {
	kv KV
}

// NewStore creates a content store over the given Redis client.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save replaces the stored content.
func (s *Store) Save(ctx context.Context, content string) error {
	if err := s.kv.Set(ctx, contentKey, content, 0).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to save content")
	}
	return nil
}

// Get returns the stored content, or empty when nothing was saved yet.
func (s *Store) Get(ctx context.Context) (string, error) {
	val, err := s.kv.Get(ctx, contentKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load content")
	}
	return val, nil
}
