package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	return New(NewClient(mr.Addr(), "", 0), "test:", time.Minute), mr
}

func TestGetOrLoadJSONCachesValue(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{ID: 1, Name: "Acme"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(ctx, c, "client:1", load)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("test:client:1"))

	c.Delete(ctx, "client:1")
	assert.False(t, mr.Exists("test:client:1"))
	_, err := GetOrLoadJSON(ctx, c, "client:1", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoadJSONDoesNotCacheErrors(t *testing.T) {
	c, mr := newCache(t)
	boom := errors.New("not found")
	_, err := GetOrLoadJSON(context.Background(), c, "client:9", func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("test:client:9"))
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	var c *Cache
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := GetOrLoadJSON(context.Background(), c, "k", func(context.Context) (*item, error) {
			calls++
			return &item{}, nil
		})
		require.NoError(t, err)
	}
	c.Delete(context.Background(), "k")
	assert.Equal(t, 2, calls)
}

func TestDeletePrefix(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	for _, k := range []string{"client:1", "client:2", "order:1"} {
		require.NoError(t, mr.Set("test:"+k, "x"))
	}
	require.NoError(t, c.DeletePrefix(ctx, "client:"))
	assert.False(t, mr.Exists("test:client:1"))
	assert.False(t, mr.Exists("test:client:2"))
	assert.True(t, mr.Exists("test:order:1"))

	var nilCache *Cache
	assert.NoError(t, nilCache.DeletePrefix(ctx, "client:"))
}

func TestGetOrLoadIgnoresCallerCancellation(t *testing.T) {
	c, mr := newCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := c.GetOrLoad(ctx, "client:7", func(lctx context.Context) ([]byte, error) {
		if err := lctx.Err(); err != nil {
			return nil, err
		}
		return []byte(`{"id":7}`), nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(got))
	assert.True(t, mr.Exists("test:client:7"))
}
