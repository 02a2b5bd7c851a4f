package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move the memory cache through time
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestMemoryCache(maxItems int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(maxItems)
	c.now = clock.Now
	return c, clock
}

func TestMemoryCache_Basic(t *testing.T) {
	ctx := context.Background()
	var c Cache = NewMemoryCache(10)
	defer c.Close()

	err := c.Set(ctx, "key1", []byte("value1"), time.Hour)
	require.NoError(t, err)

	value, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), value)

	exists, err := c.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Missing keys are not errors
	value, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	require.NoError(t, c.Delete(ctx, "a", "b", "never-set"))

	exists, _ := c.Exists(ctx, "a")
	assert.False(t, exists)
	exists, _ = c.Exists(ctx, "c")
	assert.True(t, exists)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestMemoryCache(10)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))

	clock.now = clock.now.Add(2 * time.Minute)

	value, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, value)

	exists, _ := c.Exists(ctx, "short")
	assert.False(t, exists)

	value, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), value)
}

func TestMemoryCache_EvictsEarliestExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestMemoryCache(3)

	require.NoError(t, c.Set(ctx, "late", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "early", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "none", []byte("3"), 0))
	require.NoError(t, c.Set(ctx, "new", []byte("4"), time.Hour))

	assert.Equal(t, 3, c.Len())
	exists, _ := c.Exists(ctx, "early")
	assert.False(t, exists)
	for _, k := range []string{"late", "none", "new"} {
		exists, _ := c.Exists(ctx, k)
		assert.True(t, exists, k)
	}
}

func TestMemoryCache_OverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "a", []byte("3"), time.Hour))

	assert.Equal(t, 2, c.Len())
	value, _ := c.Get(ctx, "a")
	assert.Equal(t, []byte("3"), value)
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	original := []byte("value")
	require.NoError(t, c.Set(ctx, "k", original, 0))
	original[0] = 'X'

	value, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("value"), value)

	value[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("value"), again)
}

func TestMemoryCache_CloseAndHealth(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	assert.NoError(t, c.Health(ctx))
	assert.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}

func TestCacheError(t *testing.T) {
	err := &CacheError{
		Operation: "get",
		Key:       "test-key",
		Err:       assert.AnError,
	}

	assert.Equal(t, "cache get failed for key 'test-key': assert.AnError general error for testing", err.Error())
	assert.Equal(t, assert.AnError, err.Unwrap())

	wrapped := fmt.Errorf("lookup: %w", err)
	var cacheErr *CacheError
	require.True(t, errors.As(wrapped, &cacheErr))
	assert.Equal(t, "get", cacheErr.Operation)
	assert.ErrorIs(t, wrapped, assert.AnError)
}

func TestParseValkeyURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		wantErr  bool
	}{
		{"plain", "valkey://localhost:6379", "localhost:6379", "", false},
		{"with password", "redis://:secret@cache:6380", "cache:6380", "secret", false},
		{"user and password", "valkey://user:pw@cache:6379/0", "cache:6379", "pw", false},
		{"missing host", "valkey://", "", "", true},
		{"garbage", "://bad", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, password, err := parseValkeyURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.addr, addr)
			assert.Equal(t, tt.password, password)
		})
	}
}
