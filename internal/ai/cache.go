package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

var _ Forgetter = (*CachedProvider)(nil)

// CachedProvider memoizes ListModels per credential. Generation calls pass
// straight through to the wrapped provider.
type CachedProvider struct {
	Provider
	cache *ristretto.Cache[string, []string]
	ttl   time.Duration
}

// WithModelCache wraps p. maxEntries bounds the number of cached
// credentials; ttl bounds how long a listing is trusted.
func WithModelCache(p Provider, maxEntries int64, ttl time.Duration) (*CachedProvider, error) {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []string]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("model cache: %w", err)
	}
	return &CachedProvider{Provider: p, cache: c, ttl: ttl}, nil
}

// ListModels returns a cached listing when one exists for apiKey.
// Only successful listings are cached.
func (c *CachedProvider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	key := c.cacheKey(apiKey)
	if models, ok := c.cache.Get(key); ok {
		return models, nil
	}

	models, err := c.Provider.ListModels(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(key, models, 1, c.ttl)
	c.cache.Wait()
	return models, nil
}

// Forget drops the cached listing for apiKey.
func (c *CachedProvider) Forget(apiKey string) {
	c.cache.Del(c.cacheKey(apiKey))
}

// Close releases the cache.
func (c *CachedProvider) Close() {
	c.cache.Close()
}

// cacheKey never stores the raw credential.
func (c *CachedProvider) cacheKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return c.Provider.Name() + ":" + hex.EncodeToString(sum[:16])
}
