package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"blackbird/internal/testutil"
)

func TestNew(t *testing.T) {
	t.Run("creates cache with specified capacity", func(t *testing.T) {
		c := New[string](10)
		testutil.AssertEqual(t, c.Capacity(), 10, "capacity should match")
		testutil.AssertEqual(t, c.Len(), 0, "new cache should be empty")
	})

	t.Run("uses default capacity for invalid values", func(t *testing.T) {
		testutil.AssertEqual(t, New[int](0).Capacity(), 100, "default capacity")
		testutil.AssertEqual(t, New[int](-10).Capacity(), 100, "default capacity for negative")
	})
}

func TestLRU_SetAndGet(t *testing.T) {
	c := New[string](10)
	c.Set("key1", "value1", 0)

	value, found := c.Get("key1")
	testutil.AssertTrue(t, found, "should find stored value")
	testutil.AssertEqual(t, value, "value1", "value should match")

	value, found = c.Get("missing")
	testutil.AssertFalse(t, found, "should not find missing key")
	testutil.AssertEqual(t, value, "", "zero value for missing key")

	c.Set("key1", "value2", 0)
	value, _ = c.Get("key1")
	testutil.AssertEqual(t, value, "value2", "should have updated value")
	testutil.AssertEqual(t, c.Len(), 1, "size should still be 1")

	c.Delete("key1")
	_, found = c.Get("key1")
	testutil.AssertFalse(t, found, "deleted")
}

func TestLRU_Eviction(t *testing.T) {
	c := New[int](2)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	// "a" pasa a ser el más reciente
	_, _ = c.Get("a")
	c.Set("c", 3, 0)

	_, foundA := c.Get("a")
	_, foundB := c.Get("b")
	_, foundC := c.Get("c")
	testutil.AssertTrue(t, foundA, "recently used kept")
	testutil.AssertFalse(t, foundB, "least recently used evicted")
	testutil.AssertTrue(t, foundC, "new entry kept")
	testutil.AssertEqual(t, c.Len(), 2, "size at capacity")
}

func TestLRU_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](10)
	c.now = func() time.Time { return now }

	c.Set("short", "v", time.Minute)
	c.Set("forever", "v", 0)

	now = now.Add(2 * time.Minute)

	_, found := c.Get("short")
	testutil.AssertFalse(t, found, "expired entry")
	_, found = c.Get("forever")
	testutil.AssertTrue(t, found, "no ttl never expires")
	testutil.AssertEqual(t, c.Len(), 1, "expired entry removed on read")
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[int](50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%80)
				c.Set(key, j, 0)
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	testutil.AssertTrue(t, c.Len() <= 50, "capacity respected")
}
