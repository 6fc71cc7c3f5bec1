package cache

import (
	"context"
	"time"
)

// NullCache drops every write and misses every read. It backs --no-cache
// and keeps the runner free of nil checks.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns the no-op cache.
func NewNullCache() Cache {
	return &NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}
