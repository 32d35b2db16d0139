package mediagroup

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	groups []Group
}

func (c *collector) add(g Group) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups = append(c.groups, g)
}

func (c *collector) get() []Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Group(nil), c.groups...)
}

func TestAggregator_FlushesAlbumAfterDebounce(t *testing.T) {
	var c collector
	a := New(Options{Debounce: 30 * time.Millisecond, OnFlush: c.add})

	a.Add(Item{ChatID: 1, UserID: 7, MediaGroupID: "g", FileID: "a"})
	a.Add(Item{ChatID: 1, UserID: 7, MediaGroupID: "g", FileID: "b", Caption: "vaciar"})
	a.Add(Item{ChatID: 1, UserID: 7, MediaGroupID: "g", FileID: "c"})

	require.Eventually(t, func() bool { return len(c.get()) == 1 }, time.Second, 5*time.Millisecond)

	g := c.get()[0]
	assert.Equal(t, []string{"a", "b", "c"}, g.FileIDs)
	assert.Equal(t, "vaciar", g.Caption)
	assert.Equal(t, int64(7), g.UserID)
	assert.Zero(t, a.Pending())
}

func TestAggregator_SeparatesAlbumsByChat(t *testing.T) {
	var c collector
	a := New(Options{Debounce: 20 * time.Millisecond, OnFlush: c.add})

	a.Add(Item{ChatID: 1, MediaGroupID: "g", FileID: "a"})
	a.Add(Item{ChatID: 2, MediaGroupID: "g", FileID: "b"})

	require.Eventually(t, func() bool { return len(c.get()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestAggregator_FlushesEarlyAtMaxItems(t *testing.T) {
	var c collector
	a := New(Options{Debounce: time.Hour, MaxItems: 2, OnFlush: c.add})

	a.Add(Item{ChatID: 1, MediaGroupID: "g", FileID: "a"})
	a.Add(Item{ChatID: 1, MediaGroupID: "g", FileID: "b"})

	groups := c.get()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "b"}, groups[0].FileIDs)
}

func TestAggregator_IgnoresItemsWithoutAlbum(t *testing.T) {
	a := New(Options{Debounce: time.Hour})

	a.Add(Item{ChatID: 1, FileID: "a"})
	a.Add(Item{ChatID: 1, MediaGroupID: "g"})

	assert.Zero(t, a.Pending())
}

func TestAggregator_StopDropsPending(t *testing.T) {
	var c collector
	a := New(Options{Debounce: 20 * time.Millisecond, OnFlush: c.add})

	a.Add(Item{ChatID: 1, MediaGroupID: "g", FileID: "a"})
	a.Stop()
	a.Add(Item{ChatID: 1, MediaGroupID: "h", FileID: "b"})

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, c.get())
	assert.Zero(t, a.Pending())
}
