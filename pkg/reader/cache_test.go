package reader

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache(5)

	c.Put("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := NewCache(5)

	for i := 1; i <= 6; i++ {
		c.Put(fmt.Sprintf("ch-%d", i), i)
	}

	_, ok := c.Get("ch-1")
	assert.False(t, ok, "oldest entry should be evicted")
	for i := 2; i <= 6; i++ {
		_, ok := c.Get(fmt.Sprintf("ch-%d", i))
		assert.True(t, ok, "ch-%d should survive", i)
	}
	assert.Equal(t, 5, c.Len())
}

func TestCacheGetDoesNotAffectEviction(t *testing.T) {
	c := NewCache(3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Reading "a" repeatedly must not save it.
	for i := 0; i < 10; i++ {
		c.Get("a")
	}
	c.Put("d", 4)

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("d")
	assert.True(t, ok)
}

func TestCacheRePutResetsRecency(t *testing.T) {
	c := NewCache(3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Put("a", 10) // refreshed, now newest
	c.Put("d", 4)  // should evict "b", not "a"

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestListKeyDistinctFromChapterKey(t *testing.T) {
	c := NewCache(5)

	c.Put("naruto", "chapter payload")
	c.Put(ListKey("naruto"), "list payload")

	v, _ := c.Get("naruto")
	assert.Equal(t, "chapter payload", v)
	v, _ = c.Get(ListKey("naruto"))
	assert.Equal(t, "list payload", v)
}
