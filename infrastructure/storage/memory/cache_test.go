package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/cache"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
)

func TestCache_SetAndGet(t *testing.T) {
	t.Parallel()

	c := memory.NewCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), cache.SetOptions{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || string(got) != "v" {
		t.Errorf("Get() = %q, %v, want %q, true", got, ok, "v")
	}

	_, ok, err = c.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get(missing) error = %v", err)
	}
	if ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestCache_EmptyKeyRejected(t *testing.T) {
	t.Parallel()

	c := memory.NewCache()
	err := c.Set(context.Background(), "", []byte("v"), cache.SetOptions{})
	if !errors.Is(err, cache.ErrInvalidKey) {
		t.Errorf("Set(empty key) error = %v, want ErrInvalidKey", err)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	t.Parallel()

	c := memory.NewCache()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), cache.SetOptions{TTL: 10 * time.Millisecond}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, _ := c.Get(ctx, "short"); !ok {
		t.Fatal("Get() before expiry = false, want true")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("Get() after expiry = true, want false")
	}
}

func TestCache_LRUEviction(t *testing.T) {
	t.Parallel()

	c := memory.NewCache(memory.WithMaxSize(2))
	ctx := context.Background()

	if err := c.Set(ctx, "a", []byte("1"), cache.SetOptions{}); err != nil {
		t.Fatalf("Set(a) error = %v", err)
	}
	time.Sleep(time.Millisecond)
	if err := c.Set(ctx, "b", []byte("2"), cache.SetOptions{}); err != nil {
		t.Fatalf("Set(b) error = %v", err)
	}
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes the least recently used entry.
	if _, ok, _ := c.Get(ctx, "a"); !ok {
		t.Fatal("Get(a) = false, want true")
	}
	time.Sleep(time.Millisecond)

	if err := c.Set(ctx, "c", []byte("3"), cache.SetOptions{}); err != nil {
		t.Fatalf("Set(c) error = %v", err)
	}

	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Error("Get(b) = true, want eviction of the least recently used entry")
	}
	if _, ok, _ := c.Get(ctx, "a"); !ok {
		t.Error("Get(a) = false, want recently used entry kept")
	}
	if _, ok, _ := c.Get(ctx, "c"); !ok {
		t.Error("Get(c) = false, want newly set entry present")
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := memory.NewCache()
	ctx := context.Background()

	original := []byte("value")
	if err := c.Set(ctx, "k", original, cache.SetOptions{}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	original[0] = 'X'

	got, _, _ := c.Get(ctx, "k")
	if string(got) != "value" {
		t.Errorf("Get() = %q, cache should store a copy", got)
	}

	got[0] = 'Y'
	got2, _, _ := c.Get(ctx, "k")
	if string(got2) != "value" {
		t.Errorf("Get() = %q, cache should return a copy", got2)
	}
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	c := memory.NewCache(memory.WithMaxSize(10))
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), cache.SetOptions{})
	c.Get(ctx, "k")
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss", stats)
	}
	if stats.Size != 1 || stats.MaxSize != 10 {
		t.Errorf("Stats() = %+v, want size 1 of 10", stats)
	}
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c := memory.NewCache()
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), cache.SetOptions{})
	c.Set(ctx, "b", []byte("2"), cache.SetOptions{})

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear(), want 0", c.Size())
	}
}
