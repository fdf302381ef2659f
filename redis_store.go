package session

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the bearer token in Redis so headless or multi-process
// clients share one session. The TokenStore contract is context-free, so
// callers cannot pass a per-call context; the store derives every call from a
// base context (see WithRedisStoreContext) bounded by a per-call timeout.
type RedisStore struct {
	client  *redis.Client
	key     string
	ctx     context.Context
	timeout time.Duration
}

var _ TokenStore = (*RedisStore)(nil)

// RedisStoreOption customizes RedisStore construction.
type RedisStoreOption func(*RedisStore)

// WithRedisStoreKey overrides the storage key, e.g. to namespace per user.
func WithRedisStoreKey(key string) RedisStoreOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithRedisStoreContext sets the base context every Redis call derives from,
// tying the store's lifetime to it. Cancel it to shut the store down.
func WithRedisStoreContext(ctx context.Context) RedisStoreOption {
	return func(s *RedisStore) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithRedisStoreTimeout bounds each Redis call.
func WithRedisStoreTimeout(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewRedisStore creates a Redis-backed token store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:  client,
		key:     "session:" + StorageKey,
		ctx:     context.Background(),
		timeout: 3 * time.Second,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

func (s *RedisStore) Set(token string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist token")
	}
	return nil
}

func (s *RedisStore) Get() (string, bool) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		return "", false
	}
	if val == "" {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to clear token")
	}
	return nil
}
