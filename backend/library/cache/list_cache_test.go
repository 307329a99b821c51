package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeWorkspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestListCacheSetGetInvalidate(t *testing.T) {
	manager := NewListCacheManager(time.Minute)
	key := WorkspaceListKey(1)

	var out []fakeWorkspace
	assert.False(t, manager.Get(key, &out))

	manager.Set(key, []fakeWorkspace{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	assert.True(t, manager.Get(key, &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Name)

	manager.Invalidate(key)
	out = nil
	assert.False(t, manager.Get(key, &out))
}

func TestListCacheExpiry(t *testing.T) {
	manager := NewListCacheManager(10 * time.Millisecond)
	key := FavoriteListKey(7)

	manager.Set(key, []fakeWorkspace{{ID: 1}})
	time.Sleep(20 * time.Millisecond)

	var out []fakeWorkspace
	assert.False(t, manager.Get(key, &out))
}

func TestListCacheSnapshotRestore(t *testing.T) {
	manager := NewListCacheManager(time.Minute)
	key := WorkspaceListKey(2)

	manager.Set(key, []fakeWorkspace{{ID: 1, Name: "before"}})

	// Optimistic patch, then rollback.
	restore := manager.Snapshot(key)
	manager.Set(key, []fakeWorkspace{{ID: 1, Name: "after"}, {ID: 2, Name: "new"}})

	var patched []fakeWorkspace
	assert.True(t, manager.Get(key, &patched))
	assert.Len(t, patched, 2)

	restore()
	var restored []fakeWorkspace
	assert.True(t, manager.Get(key, &restored))
	assert.Len(t, restored, 1)
	assert.Equal(t, "before", restored[0].Name)
}

func TestListCacheSnapshotOfMissingEntry(t *testing.T) {
	manager := NewListCacheManager(time.Minute)
	key := GroupListKey(3)

	restore := manager.Snapshot(key)
	manager.Set(key, []fakeWorkspace{{ID: 9}})
	restore()

	var out []fakeWorkspace
	assert.False(t, manager.Get(key, &out))
}

func TestListCacheKeysAreScoped(t *testing.T) {
	assert.NotEqual(t, WorkspaceListKey(1), WorkspaceListKey(2))
	assert.NotEqual(t, WorkspaceListKey(1), GroupListKey(1))
	assert.NotEqual(t, GroupListKey(1), FavoriteListKey(1))
}
