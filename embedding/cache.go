package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of distinct query strings remembered.
const DefaultCacheSize = 2048

// Provider maps a text query to a fixed-size vector. Embedding is
// deterministic: the same input always yields the same vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cached wraps a Provider with an exact-match LRU keyed by the literal query
// string. The cache is only observable as a performance effect; hits return
// bit-identical vectors.
type Cached struct {
	inner Provider
	cache *lru.Cache[string, []float32]
}

// NewCached builds a caching wrapper; size <= 0 falls back to
// DefaultCacheSize.
func NewCached(inner Provider, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache}, nil
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return copyVec(vec), nil
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, copyVec(vec))
	return vec, nil
}

// copyVec keeps callers from mutating the cached backing array.
func copyVec(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
