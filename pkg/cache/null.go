package cache

import (
	"context"
	"time"
)

// NullCache never stores anything; every Get misses.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
