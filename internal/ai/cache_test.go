package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	*Placeholder
	calls atomic.Int32
	err   error
}

func (c *countingProvider) ListModels(ctx context.Context, key string) ([]string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return []string{"m-" + key}, nil
}

func TestCachedProvider_ListModels(t *testing.T) {
	inner := &countingProvider{Placeholder: NewPlaceholder(0)}
	cp, err := WithModelCache(inner, 16, time.Minute)
	require.NoError(t, err)
	defer cp.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		models, err := cp.ListModels(ctx, "key-a")
		require.NoError(t, err)
		assert.Equal(t, []string{"m-key-a"}, models)
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err = cp.ListModels(ctx, "key-b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())

	cp.Forget("key-a")
	_, err = cp.ListModels(ctx, "key-a")
	require.NoError(t, err)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{Placeholder: NewPlaceholder(0), err: errors.New("nope")}
	cp, err := WithModelCache(inner, 16, time.Minute)
	require.NoError(t, err)
	defer cp.Close()

	for i := 0; i < 2; i++ {
		_, err := cp.ListModels(context.Background(), "k")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedProvider_KeyHidesCredential(t *testing.T) {
	cp, err := WithModelCache(NewPlaceholder(0), 4, time.Minute)
	require.NoError(t, err)
	defer cp.Close()

	key := cp.cacheKey("sk-secret")
	assert.NotContains(t, key, "sk-secret")
	assert.Equal(t, key, cp.cacheKey("sk-secret"))
	assert.NotEqual(t, key, cp.cacheKey("sk-other"))
}
