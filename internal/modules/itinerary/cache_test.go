// README: Redis cache tests; skipped unless VOYAGE_TEST_REDIS is set.
package itinerary

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyIsStable(t *testing.T) {
	p := BuildPrompt(kyotoRequest())
	assert.Equal(t, cacheKey(p), cacheKey(p))
	assert.NotEqual(t, cacheKey(p), cacheKey(p+" "))
	assert.Len(t, cacheKey(p), len("itinerary:prompt:")+64)
}

func TestCacheStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("VOYAGE_TEST_REDIS")
	if addr == "" {
		t.Skip("VOYAGE_TEST_REDIS not set; skipping redis cache test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	store := NewCacheStore(rdb, time.Minute)
	prompt := BuildPrompt(kyotoRequest()) + time.Now().String()
	t.Cleanup(func() { rdb.Del(ctx, cacheKey(prompt)) })

	_, ok, err := store.Get(ctx, prompt)
	require.NoError(t, err)
	assert.False(t, ok)

	want := MockItinerary(kyotoRequest())
	require.NoError(t, store.Put(ctx, prompt, want))

	raw, ok, err := store.Get(ctx, prompt)
	require.NoError(t, err)
	require.True(t, ok)
	got, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ttl, err := rdb.TTL(ctx, cacheKey(prompt)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}
