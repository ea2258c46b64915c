package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	drepo "StockSense/internal/domain/repository"
	pcache "StockSense/pkg/cache"
)

// RedisStore keeps each document as one JSON value under
// prefix:collection:owner:id and lists a bucket with SCAN.
type RedisStore struct {
	redis *pcache.RedisCache
}

func NewRedisStore(redis *pcache.RedisCache) *RedisStore {
	return &RedisStore{redis: redis}
}

func docKey(collection, owner, id string) string {
	return pcache.GenerateKeyWithParams(collection, owner, id)
}

func (s *RedisStore) Put(ctx context.Context, collection, owner, id string, doc any) error {
	if err := s.redis.Set(ctx, docKey(collection, owner, id), doc, 0); err != nil {
		return fmt.Errorf("redis put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, collection, owner, id string, dest any) error {
	err := s.redis.Get(ctx, docKey(collection, owner, id), dest)
	if errors.Is(err, pcache.ErrCacheMiss) {
		return drepo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, owner, id string) error {
	n, err := s.redis.Delete(ctx, docKey(collection, owner, id))
	if err != nil {
		return fmt.Errorf("redis delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return drepo.ErrNotFound
	}
	return nil
}

// List skips keys that vanish between SCAN and GET.
func (s *RedisStore) List(ctx context.Context, collection, owner string) ([]json.RawMessage, error) {
	keys, err := s.redis.Scan(ctx, pcache.BuildPattern(pcache.GenerateKeyWithParams(collection, owner)+":"))
	if err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", collection, err)
	}
	out := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		b, err := s.redis.GetBytes(ctx, k)
		if errors.Is(err, pcache.ErrCacheMiss) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", k, err)
		}
		out = append(out, json.RawMessage(b))
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.redis.Close() }

var _ drepo.RecordStore = (*RedisStore)(nil)
