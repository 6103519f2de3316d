package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("session", "abc", time.Minute)
	if v, ok := c.Get("session"); !ok || v != "abc" {
		t.Fatalf("Get() = %v, %v; want abc, true", v, ok)
	}

	c.Delete("session")
	if _, ok := c.Get("session"); ok {
		t.Fatal("Get() after Delete() found value")
	}

	c.Set("a", 1, time.Minute)
	c.Flush()
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() after Flush() found value")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.gob")

	c := NewFileCache(path)
	if err := c.Load(); err != nil {
		t.Fatalf("Load() on missing file = %v", err)
	}
	c.Set("client-1", "list", 0)
	if err := c.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	restored := NewFileCache(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	v, ok := restored.Get("client-1")
	if !ok || v != "list" {
		t.Fatalf("Get() = %v, %v; want list, true", v, ok)
	}
}
