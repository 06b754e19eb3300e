package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClock struct {
	now time.Time
}

func (c *mockClock) Now() time.Time { return c.now }

func (c *mockClock) Add(d time.Duration) { c.now = c.now.Add(d) }

func TestKey(t *testing.T) {
	assert.Equal(t, "/api/shows/1_{}", Key("/api/shows/1", nil))
	assert.Equal(t, `/api/shows_{"page":2}`, Key("/api/shows", map[string]int{"page": 2}))
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := &mockClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStoreWithClock(clock)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"id":1}`)))

	clock.Add(TTL - time.Second)
	body, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(body))

	clock.Add(time.Second)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_MissAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("a")))
	require.NoError(t, store.Set(ctx, "k", []byte("b")))
	body, ok, _ := store.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "b", string(body))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	src := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", src))
	src[0] = 'x'

	body, _, _ := store.Get(ctx, "k")
	body[1] = 'y'
	again, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestRedisStore_HashedKey(t *testing.T) {
	store := NewRedisStore(nil, "moviehub")
	key := store.hashedKey("/api/shows/1_{}")
	assert.Regexp(t, `^moviehub:[0-9a-f]{40}$`, key)
	assert.Equal(t, key, store.hashedKey("/api/shows/1_{}"))
	assert.NotEqual(t, key, store.hashedKey("/api/shows/2_{}"))

	assert.Regexp(t, `^cache:`, NewRedisStore(nil, "").hashedKey("x"))
}

func TestDial_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := Dial(ctx, "127.0.0.1:1", "moviehub")
	assert.Error(t, err)
}
