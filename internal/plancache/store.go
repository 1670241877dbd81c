package plancache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
)

var ErrCacheMiss = errors.New("cache miss")

// Store keeps encoded plans. Get returns ErrCacheMiss for absent or expired keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	cache *freecache.Cache
}

func NewMemoryStore(sizeMB int) *MemoryStore {
	megabyte := 1024 * 1024
	return &MemoryStore{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, err := s.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("freecache get: %w", err)
	}
	return value, nil
}

// Set stores value for ttl rounded up to whole seconds. A non-positive ttl
// is rejected, since freecache would keep such an entry forever.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("freecache set %s: non-positive ttl %s", key, ttl)
	}
	seconds := int((ttl + time.Second - 1) / time.Second)
	if err := s.cache.Set([]byte(key), value, seconds); err != nil {
		return fmt.Errorf("freecache set: %w", err)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Del([]byte(key))
	return nil
}

func (s *MemoryStore) EntryCount() int64 {
	return s.cache.EntryCount()
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NoopStore caches nothing; every read goes to the plan service.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (NoopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoopStore) Delete(context.Context, string) error {
	return nil
}
