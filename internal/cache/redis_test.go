package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRecord struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_LoadsAndStores(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedRecord) func() error {
		return func() error {
			loads++
			dest.ID = 1
			dest.Name = "loaded"
			return nil
		}
	}

	var first cachedRecord
	require.NoError(t, Aside(ctx, "record:1", &first, time.Minute, load(&first)))
	assert.Equal(t, "loaded", first.Name)
	assert.Equal(t, 1, loads)
	assert.True(t, mr.Exists("record:1"))

	// Second read is served from cache.
	var second cachedRecord
	require.NoError(t, Aside(ctx, "record:1", &second, time.Minute, load(&second)))
	assert.Equal(t, "loaded", second.Name)
	assert.Equal(t, 1, loads)
}

func TestAside_LoadErrorNotCached(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	boom := errors.New("row missing")
	var rec cachedRecord
	err := Aside(ctx, "record:2", &rec, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("record:2"))
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)

	loads := 0
	var rec cachedRecord
	load := func() error {
		loads++
		rec.Name = "direct"
		return nil
	}

	ctx := context.Background()
	require.NoError(t, Aside(ctx, "record:3", &rec, time.Minute, load))
	require.NoError(t, Aside(ctx, "record:3", &rec, time.Minute, load))
	assert.Equal(t, 2, loads)
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var rec cachedRecord
	require.NoError(t, Aside(ctx, UserKey(9), &rec, time.Minute, func() error {
		rec.ID = 9
		return nil
	}))
	require.True(t, mr.Exists(UserKey(9)))

	InvalidateUser(ctx, 9)
	assert.False(t, mr.Exists(UserKey(9)))
}

func TestAside_TTL(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var rec cachedRecord
	require.NoError(t, Aside(ctx, ProductKey(4), &rec, 30*time.Second, func() error {
		rec.ID = 4
		return nil
	}))

	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists(ProductKey(4)))
}

func TestInitRedis_BadURL(t *testing.T) {
	InitRedis("redis://[invalid")
	assert.Nil(t, GetClient())
}
