// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.
package totp

import (
	"fmt"
	"testing"
)

func TestCacheGetRequiresMatchingWindow(t *testing.T) {
	c := NewCache(10)
	c.Put("s", 5, "123456")

	if _, ok := c.Get("s", 6); ok {
		t.Fatal("stale-window entry must miss")
	}
	code, ok := c.Get("s", 5)
	if !ok || code != "123456" {
		t.Fatalf("expected hit with 123456, got %q ok=%v", code, ok)
	}
}

func TestCachePurgesStaleOnOverflow(t *testing.T) {
	c := NewCache(5)
	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("old-%d", i), 1, "000000")
	}
	// New window overflows: every window-1 entry is stale and gets purged.
	c.Put("fresh", 2, "111111")
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after stale purge, got %d", c.Len())
	}
	if _, ok := c.Get("fresh", 2); !ok {
		t.Fatal("fresh entry must survive the purge")
	}
}

func TestCacheClearsWhenAllCurrent(t *testing.T) {
	c := NewCache(5)
	for i := 0; i <= 5; i++ {
		c.Put(fmt.Sprintf("s-%d", i), 1, "000000")
	}
	// Nothing was stale, so the overflow falls back to a full clear keeping
	// only the entry that triggered it.
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after full clear, got %d", c.Len())
	}
	if _, ok := c.Get("s-5", 1); !ok {
		t.Fatal("triggering entry must remain cached")
	}
}

func TestCacheBoundHolds(t *testing.T) {
	c := NewCache(5)
	for w := int64(1); w <= 3; w++ {
		for i := 0; i < 6; i++ {
			c.Put(fmt.Sprintf("w%d-s%d", w, i), w, "000000")
		}
		if c.Len() > 5 {
			t.Fatalf("cache exceeded bound in window %d: %d entries", w, c.Len())
		}
	}
}
