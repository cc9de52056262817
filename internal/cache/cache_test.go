package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheBasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("key", "value")
		got, ok := cache.Get("key")
		if !ok {
			t.Fatal("Expected key to exist")
		}
		if got != "value" {
			t.Errorf("Got %q, want %q", got, "value")
		}
	})

	t.Run("Get missing key", func(t *testing.T) {
		if _, ok := cache.Get("missing"); ok {
			t.Error("Expected missing key to not exist")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set("doomed", "value")
		cache.Delete("doomed")
		if _, ok := cache.Get("doomed"); ok {
			t.Error("Expected deleted key to not exist")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Set("a", "1")
		cache.Set("b", "2")
		cache.Clear()
		if _, ok := cache.Get("a"); ok {
			t.Error("Expected cache to be empty after Clear")
		}
	})
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cache.Set(n, n*2)
		}(i)
		go func(n int) {
			defer wg.Done()
			cache.Get(n)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		if got, ok := cache.Get(i); !ok || got != i*2 {
			t.Errorf("Get(%d) = %d, %v; want %d, true", i, got, ok, i*2)
		}
	}
}

func TestPreviewCache(t *testing.T) {
	ClearPreviewCache()

	if _, ok := GetPreview("fp1", "gruvbox"); ok {
		t.Fatal("Expected empty preview cache")
	}

	SetPreview("fp1", "gruvbox", []byte("<p>rendered</p>"))

	got, ok := GetPreview("fp1", "gruvbox")
	if !ok || string(got) != "<p>rendered</p>" {
		t.Errorf("GetPreview() = %q, %v", got, ok)
	}

	// The same fingerprint under a different theme is a distinct entry.
	if _, ok := GetPreview("fp1", "monokai"); ok {
		t.Error("Expected a theme change to miss the cache")
	}

	ClearPreviewCache()
	if _, ok := GetPreview("fp1", "gruvbox"); ok {
		t.Error("Expected cache to be empty after clear")
	}
}

func TestCacheSetTo(t *testing.T) {
	cache := NewCache[string, int]()
	cache.Set("old", 1)

	cache.SetTo(map[string]int{"new": 2})

	if _, ok := cache.Get("old"); ok {
		t.Error("SetTo should replace the previous contents")
	}
	if got, ok := cache.Get("new"); !ok || got != 2 {
		t.Errorf("Get(new) = %d, %v; want 2, true", got, ok)
	}
}

func ExampleCache() {
	c := NewCache[string, int]()
	c.Set("answer", 42)
	v, _ := c.Get("answer")
	fmt.Println(v)
	// Output: 42
}
