package cache

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	l := newLRU(2)

	l.put("a", &Entry{Key: "a"})
	l.put("b", &Entry{Key: "b"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := l.get("a")
	require.True(t, ok)

	l.put("c", &Entry{Key: "c"})

	_, ok = l.get("b")
	assert.False(t, ok)

	_, ok = l.get("a")
	assert.True(t, ok)
	_, ok = l.get("c")
	assert.True(t, ok)
}

func TestLRU_PutReplacesExisting(t *testing.T) {
	l := newLRU(2)

	l.put("a", &Entry{Key: "a", SchemaVersion: 1})
	l.put("a", &Entry{Key: "a", SchemaVersion: 2})

	assert.Equal(t, 1, l.len())

	entry, ok := l.get("a")
	require.True(t, ok)
	assert.Equal(t, 2, entry.SchemaVersion)
}

func TestLRU_RemoveAndClear(t *testing.T) {
	l := newLRU(4)

	for i := 0; i < 4; i++ {
		key := "k" + strconv.Itoa(i)
		l.put(key, &Entry{Key: key})
	}

	l.remove("k2")
	assert.Equal(t, 3, l.len())
	_, ok := l.get("k2")
	assert.False(t, ok)

	l.clear()
	assert.Equal(t, 0, l.len())
}

func TestLRU_BoundIsRespected(t *testing.T) {
	l := newLRU(3)

	for i := 0; i < 10; i++ {
		key := "k" + strconv.Itoa(i)
		l.put(key, &Entry{Key: key})
		assert.LessOrEqual(t, l.len(), 3)
	}
}
