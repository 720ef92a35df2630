package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemorySetGet(t *testing.T) {
	store := NewMemory(0)
	ctx := context.Background()

	_, found := store.Get(ctx, "missing")
	assert.False(t, found)

	store.Set(ctx, "key", "value", 0)
	got, found := store.Get(ctx, "key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	store.Set(ctx, "key", "updated", 0)
	got, _ = store.Get(ctx, "key")
	assert.Equal(t, "updated", got)
}

func TestMemoryExpiration(t *testing.T) {
	store := NewMemory(0)
	ctx := context.Background()

	store.Set(ctx, "short", "lived", time.Millisecond)
	store.Set(ctx, "forever", "kept", 0)

	time.Sleep(5 * time.Millisecond)

	_, found := store.Get(ctx, "short")
	assert.False(t, found)

	got, found := store.Get(ctx, "forever")
	assert.True(t, found)
	assert.Equal(t, "kept", got)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory(0)
	ctx := context.Background()

	store.Set(ctx, "key", "value", 0)
	store.Delete(ctx, "key")

	_, found := store.Get(ctx, "key")
	assert.False(t, found)

	// deleting an absent key is a no-op
	store.Delete(ctx, "key")
}

func TestMemoryConcurrentAccess(t *testing.T) {
	store := NewMemory(0)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			store.Set(ctx, "shared", "value", 0)
		}
	}()
	for i := 0; i < 100; i++ {
		store.Get(ctx, "shared")
	}
	<-done
}
