package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type cachedPage struct {
	Names []string `json:"names"`
}

func TestViewCache_GetSet(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewViewCache(client, time.Minute)
	ctx := context.Background()

	var got cachedPage
	ver, ok, err := cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ports.ViewVersion{Route: "/", Generation: 0}, ver)

	require.NoError(t, cache.Set(ctx, ver, "q", cachedPage{Names: []string{"Kenya AA"}}))

	_, ok, err = cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Kenya AA"}, got.Names)
}

func TestViewCache_InvalidateHidesOlderValues(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewViewCache(client, time.Minute)
	ctx := context.Background()

	var got cachedPage
	catalogVer, _, err := cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	lotVer, _, err := cache.Get(ctx, "/lots/1", "entry", &got)
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, catalogVer, "q", cachedPage{Names: []string{"stale"}}))
	require.NoError(t, cache.Set(ctx, lotVer, "entry", cachedPage{Names: []string{"lot"}}))
	require.NoError(t, cache.Invalidate(ctx, "/"))

	_, ok, err := cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	assert.False(t, ok, "value written before invalidation must not be served")

	_, ok, err = cache.Get(ctx, "/lots/1", "entry", &got)
	require.NoError(t, err)
	assert.True(t, ok, "other routes keep their values")
}

func TestViewCache_ValuesExpire(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewViewCache(client, time.Minute)
	ctx := context.Background()

	var got cachedPage
	ver, _, err := cache.Get(ctx, "/profile", "me", &got)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, ver, "me", cachedPage{}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "/profile", "me", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestViewCache_WriteAfterInvalidationIsNeverServed(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewViewCache(client, time.Minute)
	ctx := context.Background()

	// A reader misses, a writer invalidates while the reader is loading,
	// then the reader stores its now stale snapshot.
	var got cachedPage
	ver, ok, err := cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Invalidate(ctx, "/"))
	require.NoError(t, cache.Set(ctx, ver, "q", cachedPage{Names: []string{"stale"}}))

	next, ok, err := cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	assert.False(t, ok, "snapshot loaded before the invalidation must not be served")
	assert.Equal(t, ver.Generation+1, next.Generation)

	require.NoError(t, cache.Set(ctx, next, "q", cachedPage{Names: []string{"fresh"}}))
	_, ok, err = cache.Get(ctx, "/", "q", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"fresh"}, got.Names)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/lots", routeLabel("/lots/abc"))
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, "/profile", routeLabel("/profile"))
}
