package cache

import (
	"testing"
	"time"
)

func TestTTLGetSet(t *testing.T) {
	c := NewTTL[string](4, time.Minute)
	c.Set("a", "1")

	got, ok := c.Get("a")
	if !ok || got != "1" {
		t.Fatalf("expected hit with value 1, got %q ok=%v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[int](4, time.Minute)
	base := time.Unix(1700000000, 0)
	c.now = func() time.Time { return base }

	c.Set("a", 1)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry removed, len=%d", c.Len())
	}
}

func TestTTLEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewTTL[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected c to be present")
	}
}

func TestTTLSetUpdatesExisting(t *testing.T) {
	c := NewTTL[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)

	if got, _ := c.Get("a"); got != 2 {
		t.Fatalf("expected updated value 2, got %d", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected single entry, len=%d", c.Len())
	}
}
