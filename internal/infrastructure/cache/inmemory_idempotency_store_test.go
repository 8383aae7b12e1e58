package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	t.Run("first reservation succeeds", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		reserved, err := store.Reserve(context.Background(), "order:abc", time.Minute)

		require.NoError(t, err)
		assert.True(t, reserved)
	})

	t.Run("second reservation of the same key fails", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Reserve(context.Background(), "order:abc", time.Minute)
		require.NoError(t, err)

		reserved, err := store.Reserve(context.Background(), "order:abc", time.Minute)

		require.NoError(t, err)
		assert.False(t, reserved)
	})

	t.Run("expired reservation can be taken again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Reserve(context.Background(), "order:abc", time.Nanosecond)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		reserved, err := store.Reserve(context.Background(), "order:abc", time.Minute)

		require.NoError(t, err)
		assert.True(t, reserved)
	})

	t.Run("different keys do not collide", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		first, err := store.Reserve(context.Background(), "order:abc", time.Minute)
		require.NoError(t, err)
		second, err := store.Reserve(context.Background(), "order:def", time.Minute)
		require.NoError(t, err)

		assert.True(t, first)
		assert.True(t, second)
		assert.Equal(t, 2, store.Size())
	})
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	t.Run("released key can be reserved again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Reserve(context.Background(), "order:abc", time.Minute)
		require.NoError(t, err)

		require.NoError(t, store.Release(context.Background(), "order:abc"))

		reserved, err := store.Reserve(context.Background(), "order:abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, reserved)
	})

	t.Run("releasing an unknown key is a no-op", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		assert.NoError(t, store.Release(context.Background(), "missing"))
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	t.Run("cleanup drops expired entries", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Reserve(context.Background(), "stale", time.Nanosecond)
		require.NoError(t, err)
		_, err = store.Reserve(context.Background(), "fresh", time.Hour)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		store.cleanup()

		assert.Equal(t, 1, store.Size())
	})
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	t.Run("close is safe to call twice", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()

		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})
}
